package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

type ChangedFile struct {
	Path         string
	ChangedLines []int
}

// chunkHeader matches "@@ -oldStart,oldLen +newStart,newLen @@". Only the
// new side matters.
var chunkHeader = regexp.MustCompile(`^@@ \-\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

// ChangedFiles runs git diff in dir against baseRef and returns the files
// that still exist with their added or modified line numbers. Paths are
// relative to the repository root.
func ChangedFiles(ctx context.Context, dir, baseRef string) ([]ChangedFile, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "-U0", "--no-color", baseRef)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseDiff(output)
}

// TopLevel returns the root of the work tree containing dir.
func TopLevel(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// PythonPaths returns the paths of the changed files with one of the given
// extensions.
func PythonPaths(files []ChangedFile, extensions []string) []string {
	var paths []string
	for _, f := range files {
		ext := filepath.Ext(f.Path)
		for _, want := range extensions {
			if ext == want {
				paths = append(paths, f.Path)
				break
			}
		}
	}
	return paths
}

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var changes []ChangedFile
	var currentFile *ChangedFile

	flush := func() {
		if currentFile != nil {
			changes = append(changes, *currentFile)
		}
		currentFile = nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			flush()
			continue
		}

		// The new side names the file; a deleted file has none.
		if strings.HasPrefix(line, "+++ ") {
			path := strings.TrimPrefix(line, "+++ ")
			if path == "/dev/null" {
				continue
			}
			currentFile = &ChangedFile{Path: strings.TrimPrefix(path, "b/"), ChangedLines: []int{}}
			continue
		}

		if currentFile == nil || !strings.HasPrefix(line, "@@") {
			continue
		}

		matches := chunkHeader.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		startLine, _ := strconv.Atoi(matches[1])
		count := 1 // Default length is 1 if omitted
		if matches[2] != "" {
			count, _ = strconv.Atoi(matches[2])
		}

		// A zero count is a pure deletion: no line exists on the new side, so
		// the line before the deletion is marked instead.
		if count == 0 && startLine > 0 {
			currentFile.ChangedLines = append(currentFile.ChangedLines, startLine)
		}
		for i := 0; i < count; i++ {
			currentFile.ChangedLines = append(currentFile.ChangedLines, startLine+i)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read diff: %w", err)
	}
	return changes, nil
}
