package db

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestMigrationNames_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_b.sql": {Data: []byte("SELECT 2")},
		"migrations/0001_a.sql": {Data: []byte("SELECT 1")},
		"migrations/README.md":  {Data: []byte("notes")},
		"migrations/old/x.sql":  {Data: []byte("SELECT 0")},
		"migrations/0010_c.sql": {Data: []byte("SELECT 10")},
	}
	got, err := migrationNames(fsys)
	if err != nil {
		t.Fatalf("migrationNames: %v", err)
	}
	want := []string{"0001_a.sql", "0002_b.sql", "0010_c.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMigrationNames_Embedded(t *testing.T) {
	got, err := migrationNames(migrationsFS)
	if err != nil {
		t.Fatalf("migrationNames: %v", err)
	}
	if len(got) == 0 || got[0] != "0001_generations.sql" {
		t.Errorf("embedded migrations = %v", got)
	}
}
