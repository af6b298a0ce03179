package customHttpClient

import (
	"net/http"

	"github.com/akolanti/DocChatAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

// PooledClient is shared by outbound API clients so repeated synthesis calls
// reuse connections instead of opening a fresh one per request.
func PooledClient() *http.Client {
	return pooledClient
}
