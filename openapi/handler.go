package openapi

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

// DocsUI selects which interactive documentation UI to serve.
type DocsUI int

const (
	DocsSwaggerUI DocsUI = iota
	DocsRapiDoc
	DocsRedoc
)

// HandleConfig configures the endpoints registered by Handle. The zero
// value serves Swagger UI, schema.json and schema.yaml.
type HandleConfig struct {
	// UI selects the interactive docs UI (default: DocsSwaggerUI).
	UI DocsUI

	// Title overrides the HTML page title (default: the document info.title).
	Title string

	// JSONFilename is the path for the JSON document endpoint
	// (default: "schema.json"). Set to "-" to disable. Relative paths are
	// joined with the base path, absolute paths are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "schema.yaml"). Set to "-" to disable.
	YAMLFilename string

	// DisableDocs disables the interactive HTML docs UI endpoint.
	DisableDocs bool

	// DisplayOperationID shows each operation's operationId in Swagger UI.
	// An explicit "displayOperationId" key in SwaggerUIConfig wins.
	DisplayOperationID bool

	// SwaggerUIConfig provides additional SwaggerUIBundle options, rendered
	// as JavaScript object properties next to url and dom_id:
	//
	//	SwaggerUIBundle({url: "...", dom_id: "#swagger-ui", docExpansion: "none"});
	//
	// See: https://swagger.io/docs/open-source-tools/swagger-ui/usage/configuration/
	SwaggerUIConfig map[string]any

	// Logger reports document build failures. Default: discard.
	Logger *slog.Logger
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}
	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}
	return cfg.YAMLFilename
}

// swaggerUIOptions returns the SwaggerUIBundle options with the
// operation-ID switch applied.
func (cfg HandleConfig) swaggerUIOptions() map[string]any {
	opts := maps.Clone(cfg.SwaggerUIConfig)
	if cfg.DisplayOperationID {
		if opts == nil {
			opts = make(map[string]any, 1)
		}
		if _, ok := opts["displayOperationId"]; !ok {
			opts["displayOperationId"] = true
		}
	}
	return opts
}

func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	return basePath + "/" + filename
}

// Handle registers OpenAPI endpoints under the given base path:
//
//	<basePath>/            - interactive HTML docs (unless DisableDocs)
//	<JSONFilename path>    - OpenAPI document as JSON (unless "-")
//	<YAMLFilename path>    - OpenAPI document as YAML (unless "-")
//
// The document is built from r on first request and cached, including a
// build error, which is answered with 500.
//
//	spec.Handle(r, "/swagger", &openapi.HandleConfig{DisplayOperationID: true})
func (s *Spec) Handle(r *mux.Router, basePath string, cfg *HandleConfig) {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	basePath = strings.TrimRight(basePath, "/")

	doc := s.lazyDocument(r, logger)

	var jsonPath, yamlPath string

	if jsonFile := cfg.jsonFilename(); jsonFile != "-" {
		jsonPath = resolvePath(basePath, jsonFile)
		r.HandleFunc(jsonPath, serveEncoded(doc, "application/json", marshalJSON))
	}

	if yamlFile := cfg.yamlFilename(); yamlFile != "-" {
		yamlPath = resolvePath(basePath, yamlFile)
		r.HandleFunc(yamlPath, serveEncoded(doc, "application/x-yaml", marshalYAML))
	}

	if cfg.DisableDocs {
		return
	}

	specURL := jsonPath
	if specURL == "" {
		specURL = yamlPath
	}
	if specURL == "" {
		return
	}
	s.registerDocs(r, basePath, cfg, specURL)
}

// lazyDocument builds the document once. Panics raised while building
// (for example from an Exampler) are turned into errors.
func (s *Spec) lazyDocument(r *mux.Router, logger *slog.Logger) func() (*Document, error) {
	return sync.OnceValues(func() (doc *Document, err error) {
		defer func() {
			if rv := recover(); rv != nil {
				doc, err = nil, fmt.Errorf("openapi: build panicked: %v", rv)
			}
			if err != nil {
				logger.Error("failed to build OpenAPI document", "error", err)
			}
		}()
		return s.Build(r)
	})
}

func serveEncoded(doc func() (*Document, error), contentType string, marshal func(*Document) ([]byte, error)) http.HandlerFunc {
	encoded := sync.OnceValues(func() ([]byte, error) {
		d, err := doc()
		if err != nil {
			return nil, err
		}
		return marshal(d)
	})

	return func(w http.ResponseWriter, _ *http.Request) {
		data, err := encoded()
		if err != nil {
			http.Error(w, "failed to build OpenAPI document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func marshalJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// marshalYAML encodes the document through its JSON form so YAML keys match
// the json tags.
func marshalYAML(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

// clearStyle drops the flow and quoting styles yaml.v3 keeps for JSON
// input. The encoder re-quotes scalars that would otherwise change type.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

func (s *Spec) registerDocs(r *mux.Router, basePath string, cfg *HandleConfig, specURL string) {
	title := cfg.Title
	if title == "" {
		title = s.info.Title
	}

	var page string
	switch cfg.UI {
	case DocsRapiDoc:
		page = rapidocTemplate(title, specURL)
	case DocsRedoc:
		page = redocTemplate(title, specURL)
	default:
		page = swaggerUITemplate(title, specURL, cfg.swaggerUIOptions())
	}
	data := []byte(page)

	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
	if basePath == "" {
		r.HandleFunc("/", handler)
	} else {
		r.HandleFunc(basePath, handler)
		r.HandleFunc(basePath+"/", handler)
	}
}

func swaggerUITemplate(title, specPath string, config map[string]any) string {
	var extra strings.Builder
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := json.Marshal(config[k])
		if err != nil {
			continue
		}
		fmt.Fprintf(&extra, ", %s: %s", k, v)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specPath, extra.String())
}

func rapidocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q></rapi-doc>
</body>
</html>`, html.EscapeString(title), specPath)
}

func redocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, html.EscapeString(title), specPath)
}
