package genome

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type SearchCategory struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	SearchType string `json:"search_type"`
}

type ExternalResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Ontology struct {
	Abbrev string `json:"abbrev"`
	Name   string `json:"name"`
}

type speciesFile struct {
	Order    int `json:"order"`
	Organism struct {
		TaxonID           int                `json:"taxon_id"`
		Name              string             `json:"name"`
		Chromosomes       []ChromosomeSize   `json:"chromosomes"`
		SearchCategories  []SearchCategory   `json:"search_categories"`
		ExternalResources []ExternalResource `json:"external_resources"`
	} `json:"organism"`
}

// Species is read once from its config file and is read-only afterwards.
type Species struct {
	taxonID    int
	name       string
	source     string
	order      int
	chrSizes   []ChromosomeSize
	categories []SearchCategory
	resources  []ExternalResource
	ontologies []Ontology
}

func NewSpecies(taxonID int, name string, chrSizes []ChromosomeSize) *Species {
	return &Species{taxonID: taxonID, name: name, chrSizes: chrSizes}
}

// LoadSpecies parses one organism config file.
func LoadSpecies(path string) (*Species, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f speciesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("species config %s: %w", path, err)
	}
	if f.Organism.TaxonID == 0 || len(f.Organism.Chromosomes) == 0 {
		return nil, fmt.Errorf("species config %s: missing taxon_id or chromosomes", path)
	}

	s := &Species{
		taxonID:    f.Organism.TaxonID,
		name:       f.Organism.Name,
		source:     filepath.Base(path),
		order:      f.Order,
		chrSizes:   f.Organism.Chromosomes,
		categories: f.Organism.SearchCategories,
		resources:  f.Organism.ExternalResources,
	}

	for _, cat := range s.categories {
		if cat.SearchType == "OntAnnotation" {
			s.ontologies = append(s.ontologies, Ontology{Abbrev: cat.Name, Name: cat.Value})
		}
	}
	sort.Slice(s.ontologies, func(i, j int) bool {
		return s.ontologies[i].Abbrev < s.ontologies[j].Abbrev
	})

	return s, nil
}

// LoadSpeciesDir reads every *.json file in dir. Files with an "order" field
// come first, in that order; the rest follow by file name.
func LoadSpeciesDir(dir string) ([]*Species, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	all := make([]*Species, 0, len(paths))
	for _, p := range paths {
		s, err := LoadSpecies(p)
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].order, all[j].order
		if a == 0 || b == 0 {
			return a != 0 && b == 0
		}
		return a < b
	})
	return all, nil
}

func (s *Species) TaxonID() int { return s.taxonID }

func (s *Species) Name() string { return s.name }

func (s *Species) Source() string { return s.source }

func (s *Species) ChromosomeSizes() []ChromosomeSize { return s.chrSizes }

func (s *Species) SearchCategories() []SearchCategory { return s.categories }

func (s *Species) ExternalResources() []ExternalResource { return s.resources }

func (s *Species) Ontologies() []Ontology { return s.ontologies }

// ChromosomeSize looks up chr case-insensitively.
func (s *Species) ChromosomeSize(chr string) (int, bool) {
	for _, c := range s.chrSizes {
		if strings.EqualFold(c.Chr, chr) {
			return c.Size, true
		}
	}
	return 0, false
}

func (s *Species) Validator() *Validator {
	return NewValidator(s.chrSizes)
}
