package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadURLList reads one URL per line from a file.
// Blank lines and lines starting with "#" are skipped.
// "-" reads from stdin.
func ReadURLList(filePath string) ([]string, error) {
	if filePath == "-" {
		return scanURLs(os.Stdin)
	}

	// Expand tilde in file path
	if strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			filePath = strings.Replace(filePath, "~", home, 1)
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read URL list: %w", err)
	}
	defer file.Close()

	return scanURLs(file)
}

func scanURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	// URLs with long tracking payloads exceed the default 64k token size
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading URL list: %w", err)
	}
	return urls, nil
}
