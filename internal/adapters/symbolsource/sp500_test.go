package symbolsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeScout/internal/ports"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

const constituentsPage = `<html><body>
<table class="wikitable" id="changes">
<tbody>
<tr><th>Date</th><th>Added</th></tr>
<tr><td>2024-01-02</td><td>XYZ</td></tr>
</tbody>
</table>
<table id="constituents" class="wikitable sortable">
<tbody>
<tr><th>Symbol</th><th>Security</th></tr>
<tr><td><a href="/wiki/3M">MMM</a></td><td>3M</td></tr>
<tr><td>AOS</td><td>A. O. Smith</td></tr>
<tr><td> brk.b </td><td>Berkshire Hathaway</td></tr>
</tbody>
</table>
</body></html>`

const fallbackPage = `<html><body>
<table class="wikitable sortable">
<tbody>
<tr><th>Symbol</th></tr>
<tr><td>AAPL</td></tr>
<tr><td>MSFT</td></tr>
</tbody>
</table>
</body></html>`

func newTestSP500(t *testing.T, handler http.HandlerFunc) (*SP500Source, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	src, err := NewSP500(SP500Config{
		URL:        server.URL,
		HTTPClient: server.Client(),
		Logger:     &mockLogger{},
	})
	require.NoError(t, err)
	return src, server
}

func TestNewSP500(t *testing.T) {
	_, err := NewSP500(SP500Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger is required")

	src, err := NewSP500(SP500Config{Logger: &mockLogger{}})
	require.NoError(t, err)
	assert.Equal(t, defaultConstituentsURL, src.url)
}

func TestSP500Source_Symbols(t *testing.T) {
	src, _ := newTestSP500(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		w.Write([]byte(constituentsPage))
	})

	symbols, err := src.Symbols(context.Background())
	require.NoError(t, err)

	// The changes table appears first on the page but must be ignored in
	// favor of the table with id "constituents".
	assert.Equal(t, []string{"MMM", "AOS", "BRK.B"}, symbols)
}

func TestSP500Source_Symbols_WikitableFallback(t *testing.T) {
	src, _ := newTestSP500(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fallbackPage))
	})

	symbols, err := src.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
}

func TestSP500Source_Symbols_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "page without tables",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
			},
		},
		{
			name: "table without tickers",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html><body><table id="constituents"><tbody><tr><th>Symbol</th></tr></tbody></table></body></html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := newTestSP500(t, tt.handler)

			_, err := src.Symbols(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ports.ErrFetchFailed)
		})
	}
}
