package lookup

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// File is the on-disk form of the vocabularies:
//
//	modalidades:
//	  ORDINARIA: ORDINARIO
//	carreras:
//	  - carrera: INGENIERÍA CIVIL
//	    facultad: FACULTAD DE INGENIERÍA CIVIL
//	    area: A
//	    alias: [Ingeniería Civil, ING. CIVIL]
type File struct {
	Modalities map[string]string `yaml:"modalidades"`
	Careers    []CareerEntry     `yaml:"carreras"`
}

type CareerEntry struct {
	Career  string   `yaml:"carrera"`
	Faculty string   `yaml:"facultad"`
	Area    string   `yaml:"area"`
	Aliases []string `yaml:"alias"`
}

// LoadFile reads vocabularies from a YAML file. Entries are merged over the
// built-in tables, so a file only needs to list what it adds or changes.
func LoadFile(path string) (Tables, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read lookup file: %w", err)
	}

	var f File
	if err := yaml.UnmarshalStrict(blob, &f); err != nil {
		return Tables{}, fmt.Errorf("parse lookup file %s: %w", path, err)
	}

	modality := modalityEntries()
	for k, v := range f.Modalities {
		modality[k] = v
	}

	groups := careerGroups()
	for i, c := range f.Careers {
		canonical := strings.TrimSpace(c.Career)
		if canonical == "" {
			return Tables{}, fmt.Errorf("lookup file %s: career %d has no name", path, i+1)
		}
		groups = append(groups, careerGroup{canonical: canonical, faculty: c.Faculty, area: c.Area, aliases: c.Aliases})
	}

	career, faculty, area := groupEntries(groups)
	return Tables{
		Modality: NewTable(FamilyModality, modality),
		Career:   NewTable(FamilyCareer, career),
		Faculty:  NewTable(FamilyFaculty, faculty),
		Area:     NewTable(FamilyArea, area),
	}, nil
}

// Load returns the built-in tables, or the merged tables when path is set.
func Load(path string) (Tables, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
