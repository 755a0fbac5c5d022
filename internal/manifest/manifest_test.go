package manifest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fernandofps20/tsui5/internal/apperr"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sample = `{
  "_version": "1.12.0",
  "sap.app": {
    "id": "com.acme.myapp",
    "type": "application",
    "title": "{{appTitle}}"
  },
  "sap.ui5": {
    "rootView": {
      "viewName": "com.acme.myapp.view.App",
      "type": "XML"
    },
    "routing": {
      "config": {
        "routerClass": "sap.m.routing.Router",
        "async": true
      },
      "routes": [
        {
          "name": "main",
          "pattern": "",
          "target": [
            "main"
          ]
        }
      ],
      "targets": {
        "main": {
          "viewType": "XML",
          "viewId": "main",
          "viewName": "Main"
        }
      }
    }
  }
}
`

func parse(t *testing.T, doc string) *Manifest {
	t.Helper()
	m, err := Parse([]byte(doc))
	require.NoError(t, err)
	return m
}

func assertCorrupt(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ManifestCorrupt), "got %v", err)
}

func TestParse_Rejects(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":      `{"sap.app": `,
		"array":         `[1, 2]`,
		"string":        `"manifest"`,
		"empty":         ``,
		"trailing junk": `{} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assertCorrupt(t, err)
		})
	}
}

func TestRouting_ReadsSection(t *testing.T) {
	r, err := parse(t, sample).Routing()
	require.NoError(t, err)

	require.Len(t, r.Routes, 1)
	assert.Equal(t, Route{Name: "main", Pattern: "", Target: TargetRef{"main"}}, r.Routes[0])
	assert.Equal(t, Target{ViewType: "XML", ViewID: "main", ViewName: "Main"}, r.Targets["main"])
}

func TestRouting_MissingSectionIsEmpty(t *testing.T) {
	r, err := parse(t, `{"sap.app": {"id": "x"}}`).Routing()
	require.NoError(t, err)
	assert.Empty(t, r.Routes)
	assert.NotNil(t, r.Targets)
	assert.Empty(t, r.Targets)
}

func TestRouting_StringTarget(t *testing.T) {
	doc := `{"sap.ui5": {"routing": {"routes": [{"name": "a", "pattern": "", "target": "TargetA"}]}}}`
	r, err := parse(t, doc).Routing()
	require.NoError(t, err)
	assert.Equal(t, TargetRef{"TargetA"}, r.Routes[0].Target)
}

func TestRouting_WrongShapes(t *testing.T) {
	for name, doc := range map[string]string{
		"sap.ui5 array":       `{"sap.ui5": []}`,
		"routing string":      `{"sap.ui5": {"routing": "yes"}}`,
		"routes object":       `{"sap.ui5": {"routing": {"routes": {}}}}`,
		"targets array":       `{"sap.ui5": {"routing": {"targets": []}}}`,
		"route not object":    `{"sap.ui5": {"routing": {"routes": [1]}}}`,
		"target number list":  `{"sap.ui5": {"routing": {"routes": [{"name": "a", "target": [1]}]}}}`,
		"target without name": `{"sap.ui5": {"routing": {"routes": [{"name": "a", "target": {"prefix": "x"}}]}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			m := parse(t, doc)
			_, err := m.Routing()
			assertCorrupt(t, err)

			assertCorrupt(t, m.RegisterView("Main"))
		})
	}
}

func TestEnsureRouting_CreatesMissingContainers(t *testing.T) {
	m := parse(t, `{"sap.app": {"id": "x"}}`)
	require.NoError(t, m.EnsureRouting())

	assert.True(t, gjson.GetBytes(m.doc, `sap\.ui5.routing.routes`).IsArray())
	assert.True(t, gjson.GetBytes(m.doc, `sap\.ui5.routing.targets`).IsObject())
	assert.Equal(t, "x", gjson.GetBytes(m.doc, `sap\.app.id`).String())
}

func TestEnsureRouting_KeepsExisting(t *testing.T) {
	m := parse(t, sample)
	before := gjson.GetBytes(m.doc, `sap\.ui5.routing`).Raw

	require.NoError(t, m.EnsureRouting())
	assert.Equal(t, before, gjson.GetBytes(m.doc, `sap\.ui5.routing`).Raw)
}

func TestRegisterView(t *testing.T) {
	m := parse(t, sample)
	require.NoError(t, m.RegisterView("Detail"))

	r, err := m.Routing()
	require.NoError(t, err)

	require.Len(t, r.Routes, 2)
	assert.Equal(t, "main", r.Routes[0].Name)
	assert.Equal(t, Route{Name: "Detail", Pattern: "RouteDetail", Target: TargetRef{"TargetDetail"}}, r.Routes[1])

	assert.Equal(t, Target{ViewType: "XML", ViewID: "detail", ViewName: "Detail"}, r.Targets["TargetDetail"])
	assert.Contains(t, r.Targets, "main")
}

func TestRegisterView_TwiceAppendsRouteAndKeepsOneTarget(t *testing.T) {
	m := parse(t, sample)
	require.NoError(t, m.RegisterView("Main"))
	require.NoError(t, m.RegisterView("Main"))

	r, err := m.Routing()
	require.NoError(t, err)

	var named int
	for _, route := range r.Routes {
		if route.Name == "Main" {
			named++
		}
	}
	assert.Equal(t, 2, named)
	assert.Len(t, r.Targets, 2)
	assert.Equal(t, "main", r.Targets["TargetMain"].ViewID)
}

func TestRegisterView_WithoutRouting(t *testing.T) {
	m := parse(t, `{"sap.app": {"id": "x"}}`)
	require.NoError(t, m.RegisterView("Main"))

	r, err := m.Routing()
	require.NoError(t, err)
	require.Len(t, r.Routes, 1)
	assert.Equal(t, "RouteMain", r.Routes[0].Pattern)
	assert.Contains(t, r.Targets, "TargetMain")
}

func TestRegisterView_LeavesOtherKeysAlone(t *testing.T) {
	m := parse(t, sample)
	app := gjson.Get(sample, `sap\.app`).Raw
	rootView := gjson.Get(sample, `sap\.ui5.rootView`).Raw
	config := gjson.Get(sample, `sap\.ui5.routing.config`).Raw

	require.NoError(t, m.RegisterView("Detail"))
	out := m.Bytes()

	assert.Equal(t, app, gjson.GetBytes(out, `sap\.app`).Raw)
	assert.Equal(t, rootView, gjson.GetBytes(out, `sap\.ui5.rootView`).Raw)
	assert.Equal(t, config, gjson.GetBytes(out, `sap\.ui5.routing.config`).Raw)
	assert.Equal(t, "1.12.0", gjson.GetBytes(out, "_version").String())
}

func TestBytes_CanonicalInputRoundTrips(t *testing.T) {
	assert.Equal(t, sample, string(parse(t, sample).Bytes()))
}

func TestRegisterView_KeepsFourSpaceLayout(t *testing.T) {
	doc := `{
    "sap.app": {
        "id": "com.acme.myapp",
        "title": "{{appTitle}}"
    },
    "sap.ui5": {
        "routing": {
            "routes": [
                {
                    "name": "main",
                    "pattern": "",
                    "target": ["main"]
                }
            ],
            "targets": {
                "main": {"viewName": "Main"}
            }
        }
    }
}
`
	want := `{
    "sap.app": {
        "id": "com.acme.myapp",
        "title": "{{appTitle}}"
    },
    "sap.ui5": {
        "routing": {
            "routes": [
                {
                    "name": "main",
                    "pattern": "",
                    "target": ["main"]
                },
                {
                    "name": "Detail",
                    "pattern": "RouteDetail",
                    "target": [
                        "TargetDetail"
                    ]
                }
            ],
            "targets": {
                "main": {"viewName": "Main"},
                "TargetDetail": {
                    "viewType": "XML",
                    "viewId": "detail",
                    "viewName": "Detail"
                }
            }
        }
    }
}
`
	m := parse(t, doc)
	require.NoError(t, m.RegisterView("Detail"))

	out := m.Bytes()
	assert.Equal(t, want, string(out))
	assert.Equal(t, gjson.Get(doc, `sap\.app`).Raw, gjson.GetBytes(out, `sap\.app`).Raw)
}

func TestRegisterView_TabsWithoutRouting(t *testing.T) {
	tabs := func(s string) string { return strings.ReplaceAll(s, "    ", "\t") }
	doc := tabs(`{
    "sap.app": {
        "id": "x"
    }
}
`)
	want := tabs(`{
    "sap.app": {
        "id": "x"
    },
    "sap.ui5": {
        "routing": {
            "routes": [
                {
                    "name": "Main",
                    "pattern": "RouteMain",
                    "target": [
                        "TargetMain"
                    ]
                }
            ],
            "targets": {
                "TargetMain": {
                    "viewType": "XML",
                    "viewId": "main",
                    "viewName": "Main"
                }
            }
        }
    }
}
`)
	m := parse(t, doc)
	require.NoError(t, m.RegisterView("Main"))
	assert.Equal(t, want, string(m.Bytes()))
}

func TestRegisterView_SingleLineStaysSingleLine(t *testing.T) {
	m := parse(t, `{"sap.app":{"id":"x"},"sap.ui5":{"routing":{"routes":[],"targets":{}}}}`)
	require.NoError(t, m.RegisterView("Main"))

	assert.Equal(t,
		`{"sap.app":{"id":"x"},"sap.ui5":{"routing":{"routes":[{"name":"Main","pattern":"RouteMain","target":["TargetMain"]}],"targets":{"TargetMain":{"viewType":"XML","viewId":"main","viewName":"Main"}}}}}`,
		string(m.Bytes()))
}

func TestSetTarget_ReplacesInPlace(t *testing.T) {
	m := parse(t, sample)
	require.NoError(t, m.SetTarget("main", Target{ViewType: "XML", ViewID: "home", ViewName: "Home"}))

	out := m.Bytes()
	assert.Contains(t, string(out), `
      "targets": {
        "main": {
          "viewType": "XML",
          "viewId": "home",
          "viewName": "Home"
        }
      }`)
	assert.Equal(t, gjson.Get(sample, `sap\.ui5.routing.routes`).Raw, gjson.GetBytes(out, `sap\.ui5.routing.routes`).Raw)
}

func TestRouting_ObjectTargets(t *testing.T) {
	doc := `{"sap.ui5": {"routing": {"routes": [
		{"name": "a", "pattern": "", "target": [{"name": "TargetA", "prefix": "a"}, "TargetB"]},
		{"name": "b", "pattern": "b", "target": {"name": "TargetC"}}
	]}}}`
	m := parse(t, doc)

	r, err := m.Routing()
	require.NoError(t, err)
	assert.Equal(t, TargetRef{"TargetA", "TargetB"}, r.Routes[0].Target)
	assert.Equal(t, TargetRef{"TargetC"}, r.Routes[1].Target)

	require.NoError(t, m.RegisterView("Main"))
	assert.Equal(t, `{"name": "TargetA", "prefix": "a"}`, gjson.GetBytes(m.Bytes(), `sap\.ui5.routing.routes.0.target.0`).Raw)
}

func TestSetTarget_KeyWithDots(t *testing.T) {
	m := parse(t, sample)
	require.NoError(t, m.SetTarget("a.b", Target{ViewType: "XML", ViewID: "ab", ViewName: "a.b"}))

	r, err := m.Routing()
	require.NoError(t, err)
	assert.Equal(t, "ab", r.Targets["a.b"].ViewID)
}

func TestSaveAndLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := filepath.Join("app", "src", "manifest.json")
	require.NoError(t, afero.WriteFile(fsys, path, []byte(sample), 0644))

	m, err := Load(fsys, path)
	require.NoError(t, err)
	require.NoError(t, m.RegisterView("Detail"))
	require.NoError(t, m.Save(fsys, path))

	entries, err := afero.ReadDir(fsys, filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "manifest.json", entries[0].Name())

	reloaded, err := Load(fsys, path)
	require.NoError(t, err)
	r, err := reloaded.Routing()
	require.NoError(t, err)
	assert.Len(t, r.Routes, 2)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), Path)
	assertCorrupt(t, err)
	assert.Contains(t, err.Error(), "src/manifest.json not found")
}

func TestLoad_Corrupt(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, Path, []byte("{not json"), 0644))

	_, err := Load(fsys, Path)
	assertCorrupt(t, err)
}
