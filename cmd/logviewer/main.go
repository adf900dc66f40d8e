// Package main implements a small terminal viewer for the Skillscape log
// files. It tails every *.log file in a directory, renders the JSON entries
// in color and filters them live as the user types.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

var (
	refreshRate     int
	logDir          string
	filter          string
	filterMutex     sync.RWMutex
	lastPrintTime   time.Time
	lastPrintMutex  sync.RWMutex
	gapPrinted      bool
	gapPrintedMutex sync.RWMutex
	oldTermState    *term.State
)

// LogEntry is one parsed JSON log line.
type LogEntry map[string]interface{}

func printHelp() {
	fmt.Println("Usage: logviewer [log directory] [-r <refresh rate in seconds>] [-h|--help]")
	fmt.Println("\nOptions:")
	fmt.Println("  [log directory]      Path to the directory containing log files (default: ./logs/)")
	fmt.Println("  -r, --rate           Refresh rate in seconds (default: 1)")
	fmt.Println("  -h, --help           Show this help message")
	fmt.Println("\nDescription:")
	fmt.Println("  This tool monitors all *.log files in the specified directory.")
	fmt.Println("  It parses JSON log entries and displays them in a colorful, compact format.")
	fmt.Println("  Type any character to add to the filter, backspace to remove the last character.")
	fmt.Println("  Press Ctrl-C to exit.")
}

// printLine writes one line with an explicit carriage return. The terminal is
// in raw mode while the viewer runs, so a bare newline would not return the
// cursor to the start of the line.
func printLine(s string) {
	fmt.Print(strings.ReplaceAll(s, "\n", "\r\n") + "\r\n")
}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp // Return original if parsing fails
	}
	return t.Format("06-01-02 15:04:05.000000")
}

func padRight(str string, length int) string {
	if len(str) >= length {
		return str
	}
	return str + strings.Repeat(" ", length-len(str))
}

func formatLogEntry(entry LogEntry) string {
	timestamp, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)

	formattedTime := formatTimestamp(timestamp)
	paddedLevel := padRight(strings.ToUpper(level), 5)

	var levelColor string
	switch strings.ToUpper(level) {
	case "DEBUG":
		levelColor = colorBlue
	case "INFO":
		levelColor = colorGreen
	case "WARN":
		levelColor = colorYellow
	case "ERROR":
		levelColor = colorRed
	default:
		levelColor = colorWhite
	}

	formattedEntry := fmt.Sprintf("%s%s%s %s%s%s %s",
		colorMagenta, formattedTime, colorReset,
		levelColor, paddedLevel, colorReset,
		msg)

	// Add other fields
	for key, value := range entry {
		if key != "time" && key != "level" && key != "msg" {
			formattedEntry += fmt.Sprintf("\n    %s%s:%s %v", colorCyan, key, colorReset, value)
		}
	}

	return formattedEntry
}

func printLogEntry(entry string) {
	printLine(entry)
	lastPrintMutex.Lock()
	lastPrintTime = time.Now()
	lastPrintMutex.Unlock()
	gapPrintedMutex.Lock()
	gapPrinted = false
	gapPrintedMutex.Unlock()
}

func monitorLogs() {
	filePositions := make(map[string]int64)
	knownFiles := make(map[string]bool)

	for {
		logFiles, err := filepath.Glob(filepath.Join(logDir, "*.log"))
		if err != nil {
			printLine(fmt.Sprintf("%sError reading log directory: %v%s", colorRed, err, colorReset))
			time.Sleep(time.Duration(refreshRate) * time.Second)
			continue
		}

		for _, filePath := range logFiles {
			if !knownFiles[filePath] {
				printLine(fmt.Sprintf("%sNew log file detected: %s%s", colorGreen, filepath.Base(filePath), colorReset))
				knownFiles[filePath] = true
			}

			file, err := os.OpenFile(filePath, os.O_RDONLY, 0644)
			if err != nil {
				printLine(fmt.Sprintf("%sError opening %s: %v%s", colorRed, filepath.Base(filePath), err, colorReset))
				continue
			}

			stat, err := file.Stat()
			if err != nil {
				printLine(fmt.Sprintf("%sError getting file stats for %s: %v%s", colorRed, filepath.Base(filePath), err, colorReset))
				file.Close()
				continue
			}

			if stat.Size() < filePositions[filePath] {
				printLine(fmt.Sprintf("%s%s has been truncated, starting from beginning%s", colorYellow, filepath.Base(filePath), colorReset))
				filePositions[filePath] = 0
			}

			_, err = file.Seek(filePositions[filePath], io.SeekStart)
			if err != nil {
				printLine(fmt.Sprintf("%sError seeking in %s: %v%s", colorRed, filepath.Base(filePath), err, colorReset))
				file.Close()
				continue
			}

			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				line := scanner.Text()
				var entry LogEntry
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					printLine(fmt.Sprintf("%sError parsing log entry: %v%s", colorRed, err, colorReset))
					continue
				}

				formattedEntry := formatLogEntry(entry)
				filterMutex.RLock()
				currentFilter := filter
				filterMutex.RUnlock()
				if currentFilter == "" || strings.Contains(strings.ToLower(formattedEntry), strings.ToLower(currentFilter)) {
					printLogEntry(formattedEntry)
				}
			}

			if err := scanner.Err(); err != nil {
				printLine(fmt.Sprintf("%sError reading %s: %v%s", colorRed, filepath.Base(filePath), err, colorReset))
			}

			newPosition, err := file.Seek(0, io.SeekCurrent)
			if err != nil {
				printLine(fmt.Sprintf("%sError getting current position in %s: %v%s", colorRed, filepath.Base(filePath), err, colorReset))
			} else {
				filePositions[filePath] = newPosition
			}

			file.Close()
		}

		time.Sleep(50 * time.Millisecond) // Check more frequently than refresh rate
	}
}

// checkAndPrintGap prints a separator after a pause in log output so bursts
// stay visually grouped.
func checkAndPrintGap() {
	for {
		time.Sleep(50 * time.Millisecond)
		lastPrintMutex.RLock()
		timeSinceLastPrint := time.Since(lastPrintTime)
		lastPrintMutex.RUnlock()

		if timeSinceLastPrint > 100*time.Millisecond {
			gapPrintedMutex.RLock()
			currentGapPrinted := gapPrinted
			gapPrintedMutex.RUnlock()

			if !currentGapPrinted {
				printLine(fmt.Sprintf("%s◆%s", colorMagenta, colorReset))
				gapPrintedMutex.Lock()
				gapPrinted = true
				gapPrintedMutex.Unlock()
			}
		}
	}
}

// handleKeyPress reads single keystrokes from the raw terminal and edits the
// filter. Ctrl-C arrives as a byte here because raw mode disables the
// terminal's own interrupt handling.
func handleKeyPress(done chan<- struct{}) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			printLine(fmt.Sprintf("Error reading key: %v", err))
			done <- struct{}{}
			return
		}
		if n == 0 {
			continue
		}

		filterMutex.Lock()
		switch buf[0] {
		case 0x03: // Ctrl-C
			filterMutex.Unlock()
			printLine("")
			printLine("Exiting...")
			done <- struct{}{}
			return
		case 0x7F, 0x08: // Backspace
			if len(filter) > 0 {
				filter = filter[:len(filter)-1]
			}
		default:
			if buf[0] >= 0x20 && buf[0] < 0x7F {
				filter += string(buf[0])
			}
		}
		fmt.Printf("\rCurrent filter: %s\033[K", filter)
		filterMutex.Unlock()
	}
}

func cleanup() {
	if oldTermState != nil {
		if err := term.Restore(int(os.Stdin.Fd()), oldTermState); err != nil {
			fmt.Printf("Error restoring terminal: %v\n", err)
		}
	}
}

func main() {
	var help bool

	flag.IntVar(&refreshRate, "r", 1, "Refresh rate in seconds")
	flag.IntVar(&refreshRate, "rate", 1, "Refresh rate in seconds")
	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&help, "help", false, "Show help")
	flag.Parse()

	if help {
		printHelp()
		os.Exit(0)
	}

	args := flag.Args()
	logDir = "./logs/"
	if len(args) > 0 {
		fileInfo, err := os.Stat(args[0])
		if err == nil && fileInfo.IsDir() {
			logDir = args[0]
		} else {
			fmt.Printf("WARNING: '%s' is not a valid directory. Using default './logs/'\n", args[0])
		}
	}

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		fmt.Printf("Log directory '%s' does not exist. Please specify a valid directory.\n", logDir)
		os.Exit(1)
	}

	fmt.Printf("Monitoring logs in directory: %s\n", logDir)
	fmt.Printf("Refresh rate: %d second(s)\n", refreshRate)

	lastPrintTime = time.Now()

	var err error
	oldTermState, err = term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Printf("Failed to set terminal to raw mode: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		printLine("")
		printLine("Exiting...")
		cleanup()
		os.Exit(0)
	}()

	go monitorLogs()
	go checkAndPrintGap()

	done := make(chan struct{})
	go handleKeyPress(done)

	printLine("Start typing to filter logs. Press Ctrl-C to exit.")
	fmt.Print("Current filter: ")

	<-done
}
