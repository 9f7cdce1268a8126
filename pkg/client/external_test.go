package client_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lumina-inventario/pkg/client"
)

// staticSuggester implementa client.Suggester usando solo tipos de este paquete.
type staticSuggester struct {
	rows []client.SuggestionResponse
}

func (s staticSuggester) Suggest(context.Context, string) ([]client.SuggestionResponse, error) {
	return s.rows, nil
}

var _ client.Suggester = staticSuggester{}

func TestLiveSearchAcceptsExternalSuggester(t *testing.T) {
	var (
		mu  sync.Mutex
		got []client.SuggestionResponse
	)
	done := make(chan struct{})
	src := staticSuggester{rows: []client.SuggestionResponse{{ID: 3, Name: "Café", Category: "Bebidas"}}}

	ls := client.NewLiveSearch(context.Background(), src, 10*time.Millisecond, func(rows []client.SuggestionResponse, err error) {
		assert.NoError(t, err)
		mu.Lock()
		got = rows
		mu.Unlock()
		close(done)
	})
	t.Cleanup(ls.Close)
	ls.Type("caf")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sin entrega")
	}
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0].Name)
}

func TestPagerFromPublicPackage(t *testing.T) {
	p := client.NewPager(5)
	p.SetTotal(12)
	p.Goto(3)
	var q client.Query = p.Query()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 5, q.PageSize)
}
