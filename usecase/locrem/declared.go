package locrem

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hostmaint/hostmaint/domain/resolving"
)

// LoadDeclared reads the local and remote domain lists, one domain per line.
// Blank lines and lines starting with '#' are skipped.
func LoadDeclared(localPath, remotePath string) (resolving.Declared, error) {
	local, err := readDomainList(localPath)
	if err != nil {
		return resolving.Declared{}, err
	}
	remote, err := readDomainList(remotePath)
	if err != nil {
		return resolving.Declared{}, err
	}
	return resolving.NewDeclared(local, remote), nil
}

func readDomainList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open domain list: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read domain list %s: %w", path, err)
	}
	return out, nil
}
