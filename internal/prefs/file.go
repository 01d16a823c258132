package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const partialSuffix = ".part"

// FileStore keeps preferences in a JSON object on disk. Values are read once
// on open and every Set rewrites the file.
type FileStore struct {
	path      string
	values    map[string]string
	recovered error
}

// OpenFile loads the JSON store at path, creating nothing until the first Set.
// An undecodable file opens as empty and is replaced by the next Set; the
// decode error is kept for Recovered.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("preferences file path is empty")
	}
	values, err := readValues(path)
	var decodeErr *DecodeError
	switch {
	case errors.As(err, &decodeErr):
		return &FileStore{path: path, values: map[string]string{}, recovered: err}, nil
	case err != nil:
		return nil, err
	}
	return &FileStore{path: path, values: values}, nil
}

// DecodeError reports a preferences file that is not a JSON object of strings.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode preferences %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Recovered returns the decode error that made OpenFile start from an empty
// store, or nil when the file was readable.
func (s *FileStore) Recovered() error {
	return s.recovered
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value
	if err := writeValues(s.path, next); err != nil {
		return err
	}
	s.values = next
	s.recovered = nil
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return values, nil
}

func writeValues(path string, values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	partial := path + partialSuffix
	if err := os.WriteFile(partial, data, 0o644); err != nil {
		return err
	}
	return os.Rename(partial, path)
}
