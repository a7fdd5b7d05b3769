package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const filePrefix = "lactancia-"

var partPattern = regexp.MustCompile(`_(\d{2})\.log$`)

// RotatingFile is an io.Writer that starts a new file every ISO week and
// whenever the current file would grow past maxSize.
type RotatingFile struct {
	dir       string
	retention time.Duration
	maxSize   int64

	mu   sync.Mutex
	file *os.File
	week string
	size int64

	now  func() time.Time
	stop chan struct{}
	done chan struct{}
}

// NewRotatingFile creates the log directory and opens the file for the current week
func NewRotatingFile(dir string, retentionWeeks int, maxSize int64) (*RotatingFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	rf := &RotatingFile{
		dir:       dir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxSize:   maxSize,
		now:       time.Now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	rf.mu.Lock()
	err := rf.open(weekKey(rf.now()), false)
	rf.mu.Unlock()
	if err != nil {
		return nil, err
	}

	go rf.sweepLoop(24 * time.Hour)
	return rf, nil
}

// weekKey returns the ISO week in YYYY-Www form
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// open switches to the file for week. Caller holds mu.
func (rf *RotatingFile) open(week string, full bool) error {
	if rf.file != nil {
		_ = rf.file.Close()
		rf.file = nil
	}

	name := rf.pickFile(week, full)
	path := filepath.Join(rf.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	rf.file = f
	rf.week = week
	rf.size = 0
	if info, err := f.Stat(); err == nil {
		rf.size = info.Size()
	}
	return nil
}

// pickFile returns the base file for week unless it (or the last numbered
// part) is already full, in which case the next part number is used.
func (rf *RotatingFile) pickFile(week string, full bool) string {
	base := filePrefix + week + ".log"
	if !full && !rf.isFull(filepath.Join(rf.dir, base)) {
		return base
	}

	parts, _ := filepath.Glob(filepath.Join(rf.dir, filePrefix+week+"_??.log"))
	sort.Strings(parts)

	next := 1
	if len(parts) > 0 {
		last := parts[len(parts)-1]
		m := partPattern.FindStringSubmatch(last)
		if len(m) == 2 {
			n, _ := strconv.Atoi(m[1])
			if !full && !rf.isFull(last) {
				return filepath.Base(last)
			}
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%s_%02d.log", filePrefix, week, next)
}

func (rf *RotatingFile) isFull(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return rf.maxSize > 0 && info.Size() >= rf.maxSize
}

// Write appends p to the current file, rotating first when needed
func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	week := weekKey(rf.now())
	switch {
	case week != rf.week:
		if err := rf.open(week, false); err != nil {
			return 0, err
		}
	case rf.maxSize > 0 && rf.size > 0 && rf.size+int64(len(p)) > rf.maxSize:
		if err := rf.open(week, true); err != nil {
			return 0, err
		}
	}

	if rf.file == nil {
		return 0, fmt.Errorf("no log file available")
	}

	n, err := rf.file.Write(p)
	rf.size += int64(n)
	return n, err
}

// Sweep removes log files last modified before the retention window
func (rf *RotatingFile) Sweep() (int, error) {
	entries, err := os.ReadDir(rf.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := rf.now().Add(-rf.retention)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if os.Remove(filepath.Join(rf.dir, name)) == nil {
			removed++
		}
	}
	return removed, nil
}

func (rf *RotatingFile) sweepLoop(every time.Duration) {
	defer close(rf.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rf.stop:
			return
		case <-ticker.C:
			// printed to stderr, logging here would write into the file being swept
			if n, err := rf.Sweep(); err != nil {
				fmt.Fprintf(os.Stderr, "log sweep failed: %v\n", err)
			} else if n > 0 {
				fmt.Fprintf(os.Stderr, "removed %d old log files\n", n)
			}
		}
	}
}

// Close stops the sweeper and closes the current file
func (rf *RotatingFile) Close() error {
	select {
	case <-rf.stop:
	default:
		close(rf.stop)
	}
	<-rf.done

	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.file == nil {
		return nil
	}
	err := rf.file.Close()
	rf.file = nil
	return err
}
