package genome

import (
	"os"
	"path/filepath"
	"testing"
)

const mouseConfig = `{
  "organism": {
    "taxon_id": 10090,
    "name": "Mus musculus",
    "chromosomes": [{"chr": "1", "size": 195471971}, {"chr": "X", "size": 171031299}],
    "search_categories": [
      {"name": "MP", "value": "Mammalian Phenotype", "search_type": "OntAnnotation"},
      {"name": "GO", "value": "Gene Ontology", "search_type": "OntAnnotation"},
      {"name": "QTL", "value": "QTL", "search_type": "QTL"}
    ],
    "external_resources": [{"name": "MGI", "url": "http://www.informatics.jax.org"}]
  }
}`

const humanConfig = `{
  "order": 1,
  "organism": {
    "taxon_id": 9606,
    "name": "Homo sapiens",
    "chromosomes": [{"chr": "1", "size": 248956422}]
  }
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadSpecies(t *testing.T) {
	dir := t.TempDir()
	s, err := LoadSpecies(writeFile(t, dir, "mouse.json", mouseConfig))
	if err != nil {
		t.Fatalf("LoadSpecies: %v", err)
	}

	if s.TaxonID() != 10090 || s.Name() != "Mus musculus" || s.Source() != "mouse.json" {
		t.Errorf("unexpected species %d %q %q", s.TaxonID(), s.Name(), s.Source())
	}
	if size, ok := s.ChromosomeSize("x"); !ok || size != 171031299 {
		t.Errorf("ChromosomeSize(x) = %d, %v", size, ok)
	}
	if _, ok := s.ChromosomeSize("3"); ok {
		t.Error("chromosome 3 should be unknown")
	}

	onts := s.Ontologies()
	if len(onts) != 2 || onts[0].Abbrev != "GO" || onts[1].Abbrev != "MP" {
		t.Errorf("ontologies = %+v, want GO then MP", onts)
	}
	if !s.Validator().ValidInterval(NewInterval("1", 0, 1000)) {
		t.Error("species validator rejected a valid interval")
	}
}

func TestLoadSpeciesDirOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_mouse.json", mouseConfig)
	writeFile(t, dir, "b_human.json", humanConfig)
	writeFile(t, dir, "notes.txt", "ignored")

	all, err := LoadSpeciesDir(dir)
	if err != nil {
		t.Fatalf("LoadSpeciesDir: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d species, want 2", len(all))
	}
	if all[0].TaxonID() != 9606 || all[1].TaxonID() != 10090 {
		t.Errorf("order = %d, %d; ordered species should come first", all[0].TaxonID(), all[1].TaxonID())
	}
}

func TestLoadSpeciesRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSpecies(writeFile(t, dir, "bad.json", `{"organism": {"name": "x"}}`)); err == nil {
		t.Error("expected error for config without taxon id")
	}
	if _, err := LoadSpecies(writeFile(t, dir, "broken.json", `{`)); err == nil {
		t.Error("expected error for malformed json")
	}
}
