package seeds

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
)

//go:embed templates/*.yaml
var templateFiles embed.FS

type templateFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	SystemType  string         `yaml:"system_type"`
	VisitType   string         `yaml:"visit_type"`
	Items       []templateItem `yaml:"items"`
}

type templateItem struct {
	Category      string   `yaml:"category"`
	Description   string   `yaml:"description"`
	InputType     string   `yaml:"input_type"`
	Min           *float64 `yaml:"min"`
	Max           *float64 `yaml:"max"`
	Options       []string `yaml:"options"`
	Mandatory     bool     `yaml:"mandatory"`
	PhotoRequired bool     `yaml:"photo_required"`
	HelpText      string   `yaml:"help_text"`
}

// TemplateSource reads checklist template definitions from YAML files.
type TemplateSource struct {
	files fs.FS
	dir   string
}

// NewBuiltinTemplateSource serves the templates compiled into the binary.
func NewBuiltinTemplateSource() *TemplateSource {
	return &TemplateSource{files: templateFiles, dir: "templates"}
}

// NewTemplateSource reads every *.yaml file in dir of files.
func NewTemplateSource(files fs.FS, dir string) *TemplateSource {
	return &TemplateSource{files: files, dir: dir}
}

// Definitions returns the templates ordered by file name. Item sort order
// follows their position in the file.
func (s *TemplateSource) Definitions() ([]checklist.TemplateDefinition, error) {
	names, err := fs.Glob(s.files, path.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}
	sort.Strings(names)

	defs := make([]checklist.TemplateDefinition, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(s.files, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		def, err := parseTemplate(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseTemplate(raw []byte) (checklist.TemplateDefinition, error) {
	var f templateFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return checklist.TemplateDefinition{}, fmt.Errorf("invalid yaml: %w", err)
	}

	def := checklist.TemplateDefinition{
		Name:        f.Name,
		Description: f.Description,
		SystemType:  f.SystemType,
		VisitType:   f.VisitType,
		Items:       make([]checklist.TemplateItemSpec, 0, len(f.Items)),
	}
	for i, item := range f.Items {
		inputType, err := vo.NewInputType(item.InputType)
		if err != nil {
			return def, fmt.Errorf("item %d: %w", i+1, err)
		}
		def.Items = append(def.Items, checklist.TemplateItemSpec{
			Category:      item.Category,
			SortOrder:     (i + 1) * 10,
			Description:   item.Description,
			InputType:     inputType,
			MinValue:      item.Min,
			MaxValue:      item.Max,
			Options:       item.Options,
			IsMandatory:   item.Mandatory,
			PhotoRequired: item.PhotoRequired,
			HelpText:      item.HelpText,
		})
	}
	return def, nil
}
