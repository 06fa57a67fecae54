package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir:  "/home/user/.local/share/skillboard",
		LogDir:   "/home/user/.local/share/skillboard/log",
		LogLevel: "debug",
		Storage: StorageConfig{
			Type:        "s3",
			S3Bucket:    "skills",
			S3Prefix:    "me/",
			S3Region:    "eu-west-1",
			S3Endpoint:  "http://localhost:9000",
			S3PathStyle: true,
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/home/user/.local/share/skillboard/keys/skillboard.pub",
			PrivateKeyPath: "/home/user/.local/share/skillboard/keys/skillboard.key",
		},
		Suggestions: SuggestionsConfig{DelayMS: 250, TimeoutMS: 5000},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if *got != *original {
		t.Errorf("Read() = %+v, want %+v", got, original)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/sb")

	tests := []struct {
		field string
		got   string
		want  string
	}{
		{"BaseDir", cfg.BaseDir, "/data/sb"},
		{"LogDir", cfg.LogDir, "/data/sb/log"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Storage.Type", cfg.Storage.Type, "filesystem"},
		{"Storage.DataDir", cfg.Storage.DataDir, "/data/sb/data"},
		{"Encryption.Type", cfg.Encryption.Type, "none"},
		{"Encryption.PublicKeyPath", cfg.Encryption.PublicKeyPath, "/data/sb/keys/skillboard.pub"},
		{"Encryption.PrivateKeyPath", cfg.Encryption.PrivateKeyPath, "/data/sb/keys/skillboard.key"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
		}
	}
	if cfg.Suggestions.DelayMS != 1000 {
		t.Errorf("Suggestions.DelayMS = %d, want 1000", cfg.Suggestions.DelayMS)
	}
	if cfg.Encryption.Enabled() {
		t.Error("Encryption.Enabled() = true, want false")
	}
}

func TestEncryptionConfig_Enabled(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{"", false},
		{"none", false},
		{"age", true},
		{"test", true},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := (EncryptionConfig{Type: tt.typ}).Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillboard.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillboard.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillboard.toml")
		cfg := NewConfig(dir)
		cfg.Storage = StorageConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Storage.Type != "memory" {
			t.Errorf("Storage.Type = %q, want %q", got.Storage.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/skillboard.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()

		got, err := Load(filepath.Join(dir, "absent.toml"), dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if *got != *NewConfig(dir) {
			t.Errorf("Load() = %+v, want defaults", got)
		}
	})

	t.Run("partial file is completed from defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillboard.toml")
		content := "[storage]\ntype = \"sqlite\"\ndata_dir = \"/srv/sb\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		got, err := Load(path, dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.Storage.Type != "sqlite" || got.Storage.DataDir != "/srv/sb" {
			t.Errorf("Storage = %+v, want sqlite at /srv/sb", got.Storage)
		}
		if got.LogDir != filepath.Join(dir, "log") {
			t.Errorf("LogDir = %q, want %q", got.LogDir, filepath.Join(dir, "log"))
		}
		if got.Encryption.Type != "none" {
			t.Errorf("Encryption.Type = %q, want %q", got.Encryption.Type, "none")
		}
		if got.Suggestions.DelayMS != 1000 {
			t.Errorf("Suggestions.DelayMS = %d, want 1000", got.Suggestions.DelayMS)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skillboard.toml")
		if err := os.WriteFile(path, []byte("storage = [[["), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(path, dir); err == nil {
			t.Fatal("Load() expected error for malformed file")
		}
	})
}
