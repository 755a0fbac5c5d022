package catalog

import "sort"

// MergePolicy says what happens to the application manifest after a kind
// has been rendered.
type MergePolicy int

const (
	// MergeNone leaves the manifest alone.
	MergeNone MergePolicy = iota
	// MergeRoute registers a route and a target for the generated artifact.
	MergeRoute
)

func (p MergePolicy) String() string {
	switch p {
	case MergeNone:
		return "none"
	case MergeRoute:
		return "route"
	default:
		return "unknown"
	}
}

// Kind is a registered generator kind.
type Kind struct {
	Name        string      // Name used on the command line ("view")
	Dir         string      // Catalog subtree holding the kind's templates
	Description string      // One-line summary for `tsui5 generators`
	Internal    bool        // Not selectable by the artifact generator
	Policy      MergePolicy // Manifest merge applied after rendering
}

// ProjectKind is the implicit kind used only by the project generator.
const ProjectKind = "project"

// Registry contains every known generator kind. A kind must be listed here
// to be usable; the template tree alone does not make a generator.
var Registry = map[string]Kind{
	ProjectKind: {
		Name:        ProjectKind,
		Dir:         "project",
		Description: "New OpenUI5 TypeScript application",
		Internal:    true,
	},
	"view": {
		Name:        "view",
		Dir:         "view",
		Description: "XML view with its controller, registered in the router",
		Policy:      MergeRoute,
	},
	"controller": {
		Name:        "controller",
		Dir:         "controller",
		Description: "Controller extending BaseController",
	},
	"service": {
		Name:        "service",
		Dir:         "service",
		Description: "Service extending CoreService",
	},
	"fragment": {
		Name:        "fragment",
		Dir:         "fragment",
		Description: "XML fragment with a dialog",
	},
}

// projectFiles is the fixed project template list, relative to the project
// kind's directory. Changing it changes what `tsui5 create` writes.
var projectFiles = []string{
	"src/manifest.json.tmpl",
	"src/index.html.tmpl",
	"src/Component.ts.tmpl",
	"src/view/App.view.xml.tmpl",
	"src/view/Main.view.xml.tmpl",
	"src/service/AppService.ts.tmpl",
	"src/service/CoreService.ts.tmpl",
	"src/model/Formatter.ts.tmpl",
	"src/model/models.ts.tmpl",
	"src/i18n/i18n.properties.tmpl",
	"src/css/style.css.tmpl",
	"src/controller/App.controller.ts.tmpl",
	"src/controller/Main.controller.ts.tmpl",
	"src/controller/BaseController.ts.tmpl",
	".babelrc.json.tmpl",
	".eslintrc.json.tmpl",
	".gitignore.tmpl",
	"LICENSE.tmpl",
	"package.json.tmpl",
	"README.md.tmpl",
	"tsconfig.json.tmpl",
	"ui5-dist.yaml.tmpl",
	"ui5.yaml.tmpl",
}

func selectableKinds(registry map[string]Kind) []Kind {
	kinds := make([]Kind, 0, len(registry))
	for _, k := range registry {
		if !k.Internal {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })
	return kinds
}
