// Package tui is the terminal front end: a setup form, a grid of cells and a
// status line, driven by the game manager.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/usecase"
)

const (
	pageSetup = "setup"
	pageBoard = "board"

	labelRows       = "Rows"
	labelCols       = "Columns"
	labelDifficulty = "Difficulty"
)

type gameManager interface {
	NewGame(rows, cols int, difficulty entity.Difficulty) (*entity.Game, error)
	MakeTurn(ctx context.Context, game *entity.Game, cell int, observer usecase.Observer) error
}

// Defaults are used when the setup form is cancelled.
type Defaults struct {
	Rows int
	Cols int
}

type App struct {
	ctx         context.Context
	logger      *slog.Logger
	gameManager gameManager
	defaults    Defaults

	app    *tview.Application
	pages  *tview.Pages
	form   *tview.Form
	hint   *tview.TextView
	table  *tview.Table
	status *tview.TextView

	game *entity.Game
}

func New(ctx context.Context, logger *slog.Logger, gameManager gameManager, defaults Defaults) *App {
	ui := &App{
		ctx:         ctx,
		logger:      logger.With("component", "tui"),
		gameManager: gameManager,
		defaults:    defaults,

		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		hint:   tview.NewTextView().SetTextColor(tcell.ColorRed),
		table:  tview.NewTable().SetBorders(true),
		status: tview.NewTextView().SetTextAlign(tview.AlignCenter),
	}

	ui.form = ui.newSetupForm()

	ui.table.SetSelectedFunc(func(row, col int) {
		if ui.game == nil {
			return
		}
		ui.play(ui.game.Board.Index(row, col))
	})

	setup := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.form, 0, 1, true).
		AddItem(ui.hint, 1, 0, false)

	board := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.table, 0, 1, true).
		AddItem(ui.status, 1, 0, false)

	ui.pages.
		AddPage(pageSetup, setup, true, true).
		AddPage(pageBoard, board, true, false)

	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			ui.app.Stop()
			return nil
		}
		return event
	})

	return ui
}

// Run blocks until the user quits or ctx is canceled.
func (that *App) Run() error {
	go func() {
		<-that.ctx.Done()
		that.app.Stop()
	}()

	if err := that.app.SetRoot(that.pages, true).EnableMouse(true).Run(); err != nil {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	return nil
}

func (that *App) newSetupForm() *tview.Form {
	form := tview.NewForm().
		AddInputField(labelRows, strconv.Itoa(that.defaults.Rows), 6, tview.InputFieldInteger, nil).
		AddInputField(labelCols, strconv.Itoa(that.defaults.Cols), 6, tview.InputFieldInteger, nil).
		AddDropDown(labelDifficulty, []string{entity.EasyDifficulty.String(), entity.DifficultDifficulty.String()}, 0, nil).
		AddButton("Start", that.submitSetup).
		AddButton("Cancel", func() {
			that.startGame(that.defaults.Rows, that.defaults.Cols, entity.EasyDifficulty)
		})

	form.SetBorder(true).SetTitle(fmt.Sprintf(" Board size, at least %dx%d ", that.defaults.Rows, that.defaults.Cols))

	return form
}

func (that *App) submitSetup() {
	rows, err := strconv.Atoi(that.inputText(labelRows))
	if err != nil {
		that.hint.SetText("rows must be a number")
		return
	}

	cols, err := strconv.Atoi(that.inputText(labelCols))
	if err != nil {
		that.hint.SetText("columns must be a number")
		return
	}

	difficulty := entity.EasyDifficulty
	if dropDown, ok := that.form.GetFormItemByLabel(labelDifficulty).(*tview.DropDown); ok {
		_, option := dropDown.GetCurrentOption()
		difficulty = entity.ParseDifficulty(option)
	}

	that.startGame(rows, cols, difficulty)
}

func (that *App) inputText(label string) string {
	input, ok := that.form.GetFormItemByLabel(label).(*tview.InputField)
	if !ok {
		return ""
	}
	return input.GetText()
}

// startGame switches to the board, or keeps the form with a hint when the
// size is refused.
func (that *App) startGame(rows, cols int, difficulty entity.Difficulty) {
	game, err := that.gameManager.NewGame(rows, cols, difficulty)
	if err != nil {
		that.logger.Warn("game refused", "rows", rows, "cols", cols, "error", err)
		that.hint.SetText(err.Error())
		return
	}

	that.game = game
	that.hint.Clear()

	that.table.Clear().SetSelectable(true, true)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			that.table.SetCell(row, col, newCell(entity.EmptyCell))
		}
	}

	that.StatusChanged(game)
	that.pages.SwitchToPage(pageBoard)
}

func (that *App) play(cell int) {
	if that.game == nil || that.game.IsFinished() {
		return
	}

	if err := that.gameManager.MakeTurn(that.ctx, that.game, cell, that); err != nil {
		that.logger.Error("turn failed", "gameID", that.game.ID, "cell", cell, "error", err)
	}
}

func (that *App) CellUpdated(cell int, mark entity.Mark) {
	_, cols := that.game.Board.Size()
	that.table.SetCell(cell/cols, cell%cols, newCell(mark))
}

func (that *App) StatusChanged(game *entity.Game) {
	that.status.SetText(game.StatusText())

	if game.IsFinished() {
		that.table.SetSelectable(false, false)
	}
}

func newCell(mark entity.Mark) *tview.TableCell {
	cell := tview.NewTableCell(" " + string(mark) + " ").SetAlign(tview.AlignCenter)

	switch mark {
	case entity.PlayerX:
		cell.SetTextColor(tcell.ColorGreen).SetSelectable(false)
	case entity.PlayerO:
		cell.SetTextColor(tcell.ColorRed).SetSelectable(false)
	}

	return cell
}
