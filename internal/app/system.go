package app

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/sqweek/dialog"
)

type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// FilePicker asks the user for a path. A cancelled pick returns an error.
type FilePicker interface {
	Open() (string, error)
	Save() (string, error)
}

var errNoFile = errors.New("no file selected")

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type dialogFiles struct{}

func (dialogFiles) Open() (string, error) {
	return pick(dialog.File().Filter("Text files", "txt").Title("Open").Load())
}

func (dialogFiles) Save() (string, error) {
	return pick(dialog.File().Filter("Text files", "txt").Title("Save").Save())
}

func pick(path string, err error) (string, error) {
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", errNoFile
		}
		return "", err
	}
	if path == "" {
		return "", errNoFile
	}
	return path, nil
}
