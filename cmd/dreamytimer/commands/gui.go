package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/core/model"
	"dreamytimer/internal/core/timekeeper"
	"dreamytimer/internal/platform"
	"dreamytimer/internal/ui/mainview"
	"dreamytimer/internal/ui/mini"
	"dreamytimer/internal/ui/preferences"
	"dreamytimer/internal/ui/theme"
	"dreamytimer/internal/ui/tray"
	"dreamytimer/resources"
)

const (
	appID        = "app.dreamytimer"
	flushTimeout = 3 * time.Second
)

func runGUI(cmd *cobra.Command, args []string) error {
	guard, err := platform.AcquireSingleInstance(core.Name)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if activateErr := platform.ActivateRunning(core.Name); activateErr != nil {
			return fmt.Errorf("activate running instance: %w", activateErr)
		}
		log.Printf("%s is already running; showing its window", core.Name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconRunning))

	application, err := openApp(
		platform.DesktopStrategy(fyneApp, core.Name),
		platform.BellStrategy(os.Stdout),
	)
	if err != nil {
		return err
	}
	defer closeApp(application)

	keeper := application.Keeper()
	config := application.Config()
	fyneApp.Settings().SetTheme(theme.NewAppTheme(theme.Lookup(config.Theme)))

	var (
		mainWindow *mainview.Window
		miniWindow *mini.Window
	)
	prefsWindow := preferences.New(fyneApp, application)
	miniWindow = mini.New(fyneApp, application, func() {
		mainWindow.Show()
	})
	openMini := func() {
		mainWindow.Hide()
		miniWindow.Open()
	}
	showMain := func() {
		if miniWindow.IsOpen() {
			miniWindow.Close()
		}
		mainWindow.Show()
	}
	quit := func() {
		miniWindow.Close()
		keeper.Stop()
		fyneApp.Quit()
	}

	desktopApp, hasTray := fyneApp.(desktop.App)
	mainWindow = mainview.New(fyneApp, application, mainview.Actions{
		OnSettings: prefsWindow.Show,
		OnMini:     openMini,
		OnClose: func() {
			if hasTray {
				mainWindow.Hide()
				return
			}
			quit()
		},
	})
	mainWindow.Window().SetMaster()

	if hasTray {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow: showMain,
			OnToggle: func() {
				if keeper.Snapshot().Running {
					keeper.Pause()
					return
				}
				keeper.Start()
			},
			OnReset:       keeper.Reset,
			OnMini:        openMini,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		trayManager.SetIcons(resources.MustIcon(resources.IconRunning), resources.MustIcon(resources.IconPaused))
		deregister := application.Hub().Register(trayManager)
		defer deregister()
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	unwatch := application.Watch(func(config model.Configuration) {
		palette := theme.Lookup(config.Theme)
		fyne.Do(func() {
			fyneApp.Settings().SetTheme(theme.NewAppTheme(palette))
		})
		mainWindow.ApplyPalette(palette)
		miniWindow.ApplyPalette(palette)
	})
	defer unwatch()

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			switch event.Type {
			case timekeeper.EventCompleted, timekeeper.EventSessionSwitched:
				mainWindow.HandleEvent(event)
			}
		}
	}()

	go guard.Serve(func() {
		fyne.Do(showMain)
	})

	mainWindow.Show()
	mainWindow.ShowMessage(keeper.Greeting())
	fyneApp.Run()
	return nil
}

func closeApp(application *core.App) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := application.Flush(ctx); err != nil {
		log.Printf("flush settings: %v", err)
	}
	if err := application.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}
