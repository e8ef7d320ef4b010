package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/watchfire-io/pingwatch/internal/models"
)

// MaxDaemonLogs is how many run logs are kept; older ones are pruned when a
// new run starts.
const MaxDaemonLogs = 10

// GlobalLogsDir returns the path to the logs directory.
func GlobalLogsDir() (string, error) {
	return globalFile(LogsDirName)
}

// CreateDaemonLog opens a fresh log file for this daemon run and writes its
// header. The caller owns the returned file.
func CreateDaemonLog(version, mode string, pid int, startedAt time.Time) (*models.LogEntry, *os.File, error) {
	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs dir: %w", err)
	}

	entry := &models.LogEntry{
		LogID:     fmt.Sprintf("%s-%d", startedAt.UTC().Format("2006-01-02T15-04-05"), pid),
		PID:       pid,
		Version:   version,
		Mode:      mode,
		StartedAt: startedAt.UTC().Format(time.RFC3339),
	}

	f, err := os.OpenFile(filepath.Join(logsDir, entry.LogID+".log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "log_id: %s\n", entry.LogID)
	fmt.Fprintf(w, "pid: %d\n", entry.PID)
	fmt.Fprintf(w, "version: %s\n", entry.Version)
	fmt.Fprintf(w, "mode: %s\n", entry.Mode)
	fmt.Fprintf(w, "started_at: %s\n", entry.StartedAt)
	fmt.Fprintln(w, "---")
	if err := w.Flush(); err != nil {
		f.Close()
		return nil, nil, err
	}

	return entry, f, nil
}

// ListLogs returns the metadata of every daemon log, newest first.
func ListLogs() ([]*models.LogEntry, error) {
	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []*models.LogEntry
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}

		entry, err := parseLogHeader(filepath.Join(logsDir, e.Name()))
		if err != nil {
			continue
		}
		logs = append(logs, entry)
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].StartedAt != logs[j].StartedAt {
			return logs[i].StartedAt > logs[j].StartedAt
		}
		return logs[i].LogID > logs[j].LogID
	})

	return logs, nil
}

// ReadLog reads a log file and returns metadata and body.
func ReadLog(logID string) (*models.LogEntry, string, error) {
	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(filepath.Join(logsDir, filepath.Base(logID)+".log"))
	if err != nil {
		return nil, "", fmt.Errorf("log not found: %w", err)
	}

	entry, body := parseLogContent(string(data))
	if entry == nil {
		return nil, "", fmt.Errorf("invalid log format")
	}

	return entry, body, nil
}

// PruneLogs removes all but the newest keep logs.
func PruneLogs(keep int) error {
	logs, err := ListLogs()
	if err != nil || len(logs) <= keep {
		return err
	}

	logsDir, err := GlobalLogsDir()
	if err != nil {
		return err
	}
	for _, entry := range logs[keep:] {
		if err := os.Remove(filepath.Join(logsDir, entry.LogID+".log")); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func parseLogHeader(path string) (*models.LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	entry := &models.LogEntry{}
	inHeader := false

	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			if !inHeader {
				inHeader = true
				continue
			}
			break
		}
		if inHeader {
			parseLogHeaderLine(entry, line)
		}
	}

	if entry.LogID == "" {
		entry.LogID = strings.TrimSuffix(filepath.Base(path), ".log")
	}

	return entry, scanner.Err()
}

func parseLogContent(content string) (*models.LogEntry, string) {
	lines := strings.Split(content, "\n")
	entry := &models.LogEntry{}
	headerEnd := -1
	inHeader := false

	for i, line := range lines {
		if line == "---" {
			if !inHeader {
				inHeader = true
				continue
			}
			headerEnd = i
			break
		}
		if inHeader {
			parseLogHeaderLine(entry, line)
		}
	}

	if headerEnd < 0 {
		return nil, ""
	}

	return entry, strings.Join(lines[headerEnd+1:], "\n")
}

func parseLogHeaderLine(entry *models.LogEntry, line string) {
	k, v, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	switch k {
	case "log_id":
		entry.LogID = v
	case "pid":
		entry.PID, _ = strconv.Atoi(v)
	case "version":
		entry.Version = v
	case "mode":
		entry.Mode = v
	case "started_at":
		entry.StartedAt = v
	}
}
