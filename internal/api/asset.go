package api

import (
	"context"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/luxcarwash/luxchat/internal/errors"
)

// maxAssetSize caps downloaded assets such as the notification sound
const maxAssetSize = 8 << 20

// FetchAsset downloads a static asset with the client's transport
func (c *ChatClient) FetchAsset(ctx context.Context, url string) ([]byte, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("fetch asset", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIError(resp.StatusCode, url, "asset download failed")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read asset", url, err)
	}
	return data, nil
}
