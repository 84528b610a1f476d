package providers

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"
)

type fileHandler struct {
	mutex    sync.Mutex
	filename string
}

func (h *fileHandler) write(data []byte) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	f, err := os.OpenFile(h.filename, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("could not open file '%s' (%w)", h.filename, err)
	}
	defer f.Close()

	writer := bufio.NewWriter(f)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("could not write file '%s' (%w)", h.filename, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("could not write file '%s' (%w)", h.filename, err)
	}
	return nil
}

// read returns the file contents, nil if the file does not exist.
func (h *fileHandler) read() ([]byte, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := os.ReadFile(h.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read file '%s' from disk (%w)", h.filename, err)
	}
	return data, nil
}
