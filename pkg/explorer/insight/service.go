package insight

import (
	"fmt"
	"net/http"

	"github.com/custodia-network/custodia-daemon/pkg/explorer"
	"github.com/custodia-network/custodia-daemon/pkg/httputil"
)

type insight struct {
	apiURL string
}

// NewService returns a new insight service as an explorer.Service interface
func NewService(apiURL string) (explorer.Service, error) {
	service := &insight{apiURL}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (i *insight) healthCheck() error {
	url := fmt.Sprintf("%s/sync", i.apiURL)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf(resp)
	}
	return nil
}
