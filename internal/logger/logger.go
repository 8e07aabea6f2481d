package logger

import (
	"io"
	"log"
	"os"
	"sync"

	"simple-calculator/internal/config"
)

var (
	fileMutex sync.Mutex
	INFO      *log.Logger
	ERROR     *log.Logger
	logFile   *os.File
)

func LogINFO(s string) {
	if INFO == nil {
		return
	}
	INFO.Println(s)
}

func LogERROR(s string) {
	if ERROR == nil {
		return
	}
	ERROR.Println(s)
}

type lockedFile struct {
	file *os.File
}

func (lf *lockedFile) Write(p []byte) (n int, err error) {
	fileMutex.Lock()
	defer fileMutex.Unlock()
	return lf.file.Write(p)
}

// InitCLILogger настраивает логгер для интерактивного калькулятора.
// Без LOG_FILE_PATH логи отбрасываются, чтобы не смешиваться с выводом REPL.
func InitCLILogger() {
	initLogger(io.Discard)
}

// InitServerLogger настраивает логгер сервера. Без LOG_FILE_PATH пишет в stdout.
func InitServerLogger() {
	initLogger(os.Stdout)
}

func initLogger(fallback io.Writer) {
	path := ""
	if config.AppConfig != nil {
		path = config.AppConfig.LogFilePath
	}

	if path == "" {
		setOutput(fallback)
		return
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Printf("Failed to open log file: %v. We will use fallback output", err)
		setOutput(fallback)
		return
	}

	logFile = file
	setOutput(&lockedFile{file: file})
}

func setOutput(w io.Writer) {
	INFO = log.New(w, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ERROR = log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
