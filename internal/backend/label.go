package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"synbalance/cli/internal/errors"
)

// maxLabelBytes bounds the server label; it is a hostname, not a document.
const maxLabelBytes = 4 << 10

// ServerLabel fetches the plain-text label of the instance that answered.
// An empty label yields LabelUnknownServer; any failure is server_unavailable.
func (h *HTTP) ServerLabel(ctx context.Context) (string, error) {
	req, err := h.newRequest(ctx, http.MethodGet, h.endpoints.ServerName, nil)
	if err != nil {
		return "", errors.Wrap(errors.ServerUnavailable, "build label request", err)
	}
	req.Header.Set("Accept", "text/plain, */*")
	resp, err := h.do(req)
	if err != nil {
		return "", errors.Wrap(errors.ServerUnavailable, "fetch server label", err)
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return "", errors.Wrap(errors.ServerUnavailable, "fetch server label", fmt.Errorf("status %d", resp.StatusCode))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxLabelBytes))
	if err != nil {
		return "", errors.Wrap(errors.ServerUnavailable, "read server label", err)
	}
	label := strings.TrimSpace(string(b))
	if label == "" {
		return LabelUnknownServer, nil
	}
	return label, nil
}
