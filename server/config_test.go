package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janelia-flyem/dvidplane/dvid"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[logging]
logfile = "logs/dvidplane.log"
max_log_size = 10

[pixels]
byteorder = "little"
copy_regions = true

[store]
path = "db"

[cache]
size = 4
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Location() != path {
		t.Errorf("expected location %s, got %s\n", path, c.Location())
	}
	if c.Logging.Logfile != filepath.Join(dir, "logs", "dvidplane.log") || c.Logging.MaxSize != 10 {
		t.Errorf("bad logging config: %+v\n", c.Logging)
	}
	if c.Store.Path != filepath.Join(dir, "db") {
		t.Errorf("expected store path relative to config file, got %s\n", c.Store.Path)
	}
	if c.CacheBytes() != 4*dvid.Mega {
		t.Errorf("expected 4 MB cache, got %d bytes\n", c.CacheBytes())
	}
	ext, err := c.ExtractorConfig()
	if err != nil {
		t.Fatal(err)
	}
	if ext.Endianness != dvid.LittleEndian || !ext.CopyRegions {
		t.Errorf("bad extractor config: %+v\n", ext)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
pixels:
  byteorder: big
store:
  in_memory: true
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Store.InMemory {
		t.Errorf("expected in-memory store\n")
	}
	if c.Cache.Size != DefaultCacheSize {
		t.Errorf("expected default cache size to survive, got %d\n", c.Cache.Size)
	}
	ext, err := c.ExtractorConfig()
	if err != nil {
		t.Fatal(err)
	}
	if ext.Endianness != dvid.BigEndian {
		t.Errorf("expected big endian, got %s\n", ext.Endianness)
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.toml", "[pixels]\nbyteorder = \"middle\"\n")
	if _, err := LoadConfig(bad); err == nil {
		t.Errorf("expected error for unknown byte order\n")
	}
	garbled := writeFile(t, dir, "garbled.toml", "[pixels\n")
	if _, err := LoadConfig(garbled); err == nil {
		t.Errorf("expected error for bad TOML\n")
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file\n")
	}

	c, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Store.Path != DefaultStorePath || c.Location() != "" {
		t.Errorf("expected defaults, got %+v\n", c)
	}
}
