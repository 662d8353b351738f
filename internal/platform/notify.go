package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"dreamytimer/internal/core/model"
	"dreamytimer/internal/core/timekeeper"
)

// DefaultStrategyTimeout bounds a single notification attempt.
const DefaultStrategyTimeout = 3 * time.Second

var (
	// ErrNoSoundFile is returned by SoundFileStrategy when no file is configured.
	ErrNoSoundFile = errors.New("no sound file configured")
	// ErrUnsupportedSound is returned for files that are neither mp3 nor wav.
	ErrUnsupportedSound = errors.New("unsupported sound format")
	// ErrStrategyTimeout is recorded when a strategy does not finish in time.
	ErrStrategyTimeout = errors.New("notification strategy timed out")
)

// Strategy is one way of telling the user a session finished.
type Strategy interface {
	Name() string
	Deliver(ctx context.Context, kind model.Kind) error
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc struct {
	Label string
	Fn    func(ctx context.Context, kind model.Kind) error
}

// Name returns the label used in log lines.
func (strategy StrategyFunc) Name() string {
	return strategy.Label
}

// Deliver calls Fn.
func (strategy StrategyFunc) Deliver(ctx context.Context, kind model.Kind) error {
	if strategy.Fn == nil {
		return nil
	}
	return strategy.Fn(ctx, kind)
}

// Notifier tries its strategies in order and stops at the first success.
type Notifier struct {
	strategies []Strategy
	timeout    time.Duration
	logger     *log.Logger
}

// NewNotifier builds a notifier. A non-positive timeout uses DefaultStrategyTimeout.
func NewNotifier(logger *log.Logger, timeout time.Duration, strategies ...Strategy) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = DefaultStrategyTimeout
	}
	return &Notifier{strategies: strategies, timeout: timeout, logger: logger}
}

// Notify never returns an error and never panics.
func (notifier *Notifier) Notify(kind model.Kind) {
	for _, strategy := range notifier.strategies {
		err := notifier.attempt(strategy, kind)
		if err == nil {
			return
		}
		notifier.logger.Printf("notify %s: %s failed: %v", kind, strategy.Name(), err)
	}
}

func (notifier *Notifier) attempt(strategy Strategy, kind model.Kind) error {
	ctx, cancel := context.WithTimeout(context.Background(), notifier.timeout)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				result <- fmt.Errorf("panic: %v", recovered)
			}
		}()
		result <- strategy.Deliver(ctx, kind)
	}()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ErrStrategyTimeout
	}
}

// SoundFileStrategy plays an mp3 or wav file through the default audio device.
type SoundFileStrategy struct {
	path   string
	volume float64

	loadOnce sync.Once
	buffer   *beep.Buffer
	loadErr  error
}

// NewSoundFileStrategy returns a strategy for path. Volume is a base-2
// exponent; 0 plays the file unchanged.
func NewSoundFileStrategy(path string, volume float64) *SoundFileStrategy {
	return &SoundFileStrategy{path: strings.TrimSpace(path), volume: volume}
}

// Name returns the label used in log lines.
func (strategy *SoundFileStrategy) Name() string {
	return "sound file"
}

// Deliver starts playback and returns without waiting for it to finish.
func (strategy *SoundFileStrategy) Deliver(ctx context.Context, kind model.Kind) error {
	if strategy.path == "" {
		return ErrNoSoundFile
	}
	strategy.loadOnce.Do(func() {
		strategy.buffer, strategy.loadErr = loadSound(strategy.path)
	})
	if strategy.loadErr != nil {
		return strategy.loadErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	speaker.Play(&effects.Volume{
		Streamer: strategy.buffer.Streamer(0, strategy.buffer.Len()),
		Base:     2,
		Volume:   strategy.volume,
	})
	return nil
}

// loadSound decodes the whole file into memory and initialises the speaker
// at the file's sample rate.
func loadSound(path string) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer file.Close()

	streamer, format, err := decodeSound(path, file)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return buffer, nil
}

func decodeSound(path string, file *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err := mp3.Decode(file)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode mp3: %w", err)
		}
		return streamer, format, nil
	case ".wav":
		streamer, format, err := wav.Decode(file)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
		}
		return streamer, format, nil
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedSound, filepath.Ext(path))
	}
}

// DesktopStrategy posts a system notification through the fyne app.
func DesktopStrategy(app fyne.App, title string) Strategy {
	return StrategyFunc{
		Label: "desktop notification",
		Fn: func(_ context.Context, kind model.Kind) error {
			if app == nil {
				return errors.New("no desktop app")
			}
			content := strings.ReplaceAll(timekeeper.CompletionHeadline(kind), "\n", " ")
			fyne.Do(func() {
				app.SendNotification(fyne.NewNotification(title, content))
			})
			return nil
		},
	}
}

// BellStrategy writes the terminal bell character.
func BellStrategy(writer io.Writer) Strategy {
	if writer == nil {
		writer = os.Stdout
	}
	return StrategyFunc{
		Label: "terminal bell",
		Fn: func(_ context.Context, _ model.Kind) error {
			_, err := io.WriteString(writer, "\a")
			return err
		},
	}
}
