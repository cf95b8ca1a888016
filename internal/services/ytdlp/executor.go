package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Command describes one yt-dlp invocation.
type Command struct {
	Binary  string
	Args    []string
	WorkDir string
	// OnLine receives each stdout line as it arrives (progress output).
	OnLine func(string)
}

// Result carries the captured output of a finished invocation.
type Result struct {
	Stdout string
	Stderr string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, spec Command) (Result, error) {
	cmd := exec.CommandContext(ctx, spec.Binary, spec.Args...) //nolint:gosec
	if spec.WorkDir != "" {
		cmd.Dir = spec.WorkDir
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stdout pipe: %w", err)
	}
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start %s: %w", spec.Binary, err)
	}

	var stdoutBuf bytes.Buffer
	var wg sync.WaitGroup
	var scanErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			stdoutBuf.WriteString(line)
			stdoutBuf.WriteByte('\n')
			if spec.OnLine != nil {
				spec.OnLine(line)
			}
		}
		scanErr = scanner.Err()
	}()

	wg.Wait()
	waitErr := cmd.Wait()

	result := Result{
		Stdout: stdoutBuf.String(),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}
	if scanErr != nil {
		return result, fmt.Errorf("scan output: %w", scanErr)
	}
	if waitErr != nil {
		return result, waitErr
	}
	return result, nil
}
