package generator

import (
	"embed"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.tmpl
var testFS embed.FS

func TestNewRenderer(t *testing.T) {
	r := NewRenderer(testFS)
	assert.NotNil(t, r)
	assert.NotNil(t, r.funcMap)
	assert.Equal(t, testFS, r.Source())
	assert.Empty(t, r.cache)
}

func TestRender(t *testing.T) {
	r := NewRenderer(fstest.MapFS{
		"plain.tmpl":   {Data: []byte("Hello World")},
		"struct.tmpl":  {Data: []byte("Hello, {{ .Name }}!")},
		"helper.tmpl":  {Data: []byte("class {{ pascalCase .name }}")},
		"syntax.tmpl":  {Data: []byte("{{ .Name }")},
		"missing.tmpl": {Data: []byte("{{ .missing }}")},
	})

	tests := []struct {
		name        string
		path        string
		data        any
		expected    string
		wantErr     bool
		errContains string
	}{
		{
			name:     "simple template with no data",
			path:     "plain.tmpl",
			expected: "Hello World",
		},
		{
			name:     "template with struct data",
			path:     "struct.tmpl",
			data:     struct{ Name string }{Name: "Main"},
			expected: "Hello, Main!",
		},
		{
			name:     "template with helper",
			path:     "helper.tmpl",
			data:     map[string]any{"name": "order-list"},
			expected: "class OrderList",
		},
		{
			name:        "template with syntax error",
			path:        "syntax.tmpl",
			wantErr:     true,
			errContains: "failed to parse template",
		},
		{
			name:        "missing map key",
			path:        "missing.tmpl",
			data:        map[string]any{},
			wantErr:     true,
			errContains: "failed to render template",
		},
		{
			name:        "missing template",
			path:        "nope.tmpl",
			wantErr:     true,
			errContains: "failed to read template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.path, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestRender_Cache(t *testing.T) {
	r := NewRenderer(testFS)

	out, err := r.Render("testdata/greeting.txt.tmpl", map[string]string{"Name": "Main"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Main!\n", string(out))

	// Second call comes from the cache
	assert.Len(t, r.cache, 1)
	_, err = r.Render("testdata/greeting.txt.tmpl", map[string]string{"Name": "Detail"})
	require.NoError(t, err)
	assert.Len(t, r.cache, 1)
}

func TestRender_SamePathInAnotherSource(t *testing.T) {
	override := fstest.MapFS{
		"testdata/greeting.txt.tmpl": {Data: []byte("Hi {{ .Name }}")},
	}
	data := map[string]string{"Name": "Main"}

	embedded, err := NewRenderer(testFS).Render("testdata/greeting.txt.tmpl", data)
	require.NoError(t, err)
	local, err := NewRenderer(override).Render("testdata/greeting.txt.tmpl", data)
	require.NoError(t, err)

	assert.Equal(t, "Hello, Main!\n", string(embedded))
	assert.Equal(t, "Hi Main", string(local))
}

func TestRender_NoSource(t *testing.T) {
	_, err := NewRenderer(nil).Render("x.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no template source")
}

func TestRenderer_ConcurrentUse(t *testing.T) {
	r := NewRenderer(testFS)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Render("testdata/greeting.txt.tmpl", map[string]string{"Name": "Main"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
