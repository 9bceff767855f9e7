package tree

import (
	"encoding/json"
	"io"
	"os"

	"github.com/hwidmann/rootline/pkg/errors"
)

// ReadTree decodes and validates a JSON tree from r.
func ReadTree(r io.Reader) (Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Tree{}, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode tree")
	}
	if err := t.Validate(); err != nil {
		return Tree{}, err
	}
	return t, nil
}

// ReadTreeFile reads and validates a JSON tree file at path.
func ReadTreeFile(path string) (Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Tree{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Tree{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadTree(f)
}

// WriteTree encodes t as indented JSON on w.
func WriteTree(t Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return nil
}

// WriteTreeFile writes t to a JSON file at path.
func WriteTreeFile(t Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteTree(t, f)
}

// MarshalTree serializes t to JSON bytes.
func MarshalTree(t Tree) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal tree")
	}
	return data, nil
}

// UnmarshalTree deserializes and validates JSON bytes.
func UnmarshalTree(data []byte) (Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return Tree{}, errors.Wrap(errors.ErrCodeInvalidTree, err, "unmarshal tree")
	}
	if err := t.Validate(); err != nil {
		return Tree{}, err
	}
	return t, nil
}

// MarshalLayout serializes a layout to JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}

// UnmarshalLayout deserializes JSON bytes into a layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	switch l.ChartType {
	case ChartPedigree, ChartFan, ChartTimeline:
	default:
		return Layout{}, errors.New(errors.ErrCodeInvalidChartType, "unknown chart type %q", l.ChartType)
	}
	return l, nil
}

// WriteLayoutFile writes a layout to an indented JSON file at path.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return nil
}

// ReadLayoutFile reads a layout from a JSON file at path.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
