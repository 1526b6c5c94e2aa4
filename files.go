package savel

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ReadSong parses a song from r, accepting either JSON or YAML. JSON is tried
// first as every JSON document is also valid YAML, and the combined error is
// returned when neither parser accepts the input.
func ReadSong(r io.Reader) (Song, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Song{}, fmt.Errorf("reading song failed: %w", err)
	}
	var song Song
	if errJSON := json.Unmarshal(b, &song); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, &song); errYaml != nil {
			return Song{}, fmt.Errorf("unmarshaling song failed: %v / %v", errYaml, errJSON)
		}
	}
	return song, nil
}

// ReadSongFile reads a song from a .yml or .json file.
func ReadSongFile(path string) (Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return Song{}, fmt.Errorf("opening song file failed: %w", err)
	}
	defer f.Close()
	return ReadSong(f)
}

// WriteSongFile saves a song, choosing the format from the file extension:
// .json gets JSON, everything else YAML.
func WriteSongFile(song Song, path string) error {
	var contents []byte
	var err error
	if filepath.Ext(path) == ".json" {
		contents, err = json.Marshal(song)
	} else {
		contents, err = yaml.Marshal(song)
	}
	if err != nil {
		return fmt.Errorf("marshaling song failed: %w", err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("writing %v failed: %w", path, err)
	}
	return nil
}
