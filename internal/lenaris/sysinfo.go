package lenaris

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pvm-php/pvm/internal/utils/logger"
)

var (
	log = logger.Logger()

	// DefaultReleaseFiles are searched in order for os-release metadata.
	DefaultReleaseFiles = []string{"/etc/os-release", "/usr/lib/os-release"}
)

// SysInfo discovers the platform of the machine the process runs on.
type SysInfo struct {
	// ReleaseFiles replaces DefaultReleaseFiles when non-empty.
	ReleaseFiles []string
}

func (s SysInfo) VendorID() (string, error) {
	name, err := kernelName()
	if err != nil {
		return "", fmt.Errorf("querying kernel name: %w", err)
	}
	log.Debugf("Detected kernel name: %s", name)
	return name, nil
}

func (s SysInfo) DistroID() (string, error) {
	fields, path, err := s.readRelease()
	if err != nil {
		return "", err
	}

	idLike := fields["ID_LIKE"]
	if idLike == "" {
		return "", fmt.Errorf("%s has no ID_LIKE entry: %w", path, ErrFieldAbsent)
	}
	log.Debugf("Detected ID_LIKE %q in %s", idLike, path)
	return idLike, nil
}

func (s SysInfo) releaseFiles() []string {
	if len(s.ReleaseFiles) > 0 {
		return s.ReleaseFiles
	}
	return DefaultReleaseFiles
}

// readRelease parses the first os-release file that exists.
func (s SysInfo) readRelease() (map[string]string, string, error) {
	files := s.releaseFiles()
	for _, path := range files {
		file, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, path, fmt.Errorf("opening %s: %w", path, err)
		}

		fields, err := parseOSRelease(file)
		file.Close()
		if err != nil {
			return nil, path, fmt.Errorf("reading %s: %w", path, err)
		}
		return fields, path, nil
	}
	return nil, "", fmt.Errorf("no os-release file in %s: %w", strings.Join(files, ", "), fs.ErrNotExist)
}

func parseOSRelease(r io.Reader) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		fields[key] = unquote(strings.TrimSpace(parts[1]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
