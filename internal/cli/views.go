package cli

import (
	"context"
	"fmt"

	"github.com/micro-ha/smarthome-dashboard/internal/appstate"
	"github.com/micro-ha/smarthome-dashboard/internal/history"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

func (a *App) show(_ context.Context, args []string) error {
	fs := a.flags("show")
	deviceID := fs.String("device", "", "selected device id")
	roomID := fs.String("room", "", "selected room id")
	categoryID := fs.String("category", "", "selected category id")
	itemType := fs.String("type", "", "history item type")
	rangeName := fs.String("range", "", "history range: all, today, week or month")
	search := fs.String("search", "", "history search text")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: at most one view", ErrUsage)
	}

	_, signedIn := a.state.CurrentUser()
	st := appstate.NewState(signedIn)
	if len(positional) == 1 {
		view, err := appstate.ParseView(positional[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		st.Navigate(view, signedIn)
	}
	if *deviceID != "" {
		st.SelectDevice(*deviceID)
	}
	if *roomID != "" {
		st.SelectRoom(*roomID)
	}
	if *categoryID != "" {
		st.SelectCategory(*categoryID)
	}

	r := appstate.NewRouter(a.state)
	q, err := historyQuery(*itemType, *rangeName, *search)
	if err != nil {
		return err
	}
	r.HistoryQuery = q
	return r.Render(a.out, st)
}

func (a *App) views(_ context.Context, args []string) error {
	if err := exactArgs(args, 0, "no arguments"); err != nil {
		return err
	}
	for _, view := range appstate.Views() {
		marker := ""
		if view.Public() {
			marker = " (public)"
		}
		fmt.Fprintf(a.out, "%s%s\n", view, marker)
	}
	return nil
}

func historyQuery(itemType, rangeName, search string) (history.Query, error) {
	r, err := history.ParseRange(rangeName)
	if err != nil {
		return history.Query{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	q := history.Query{ItemType: model.ItemType(itemType), Range: r, Search: search}
	if itemType == "" || itemType == "all" {
		return q, nil
	}
	for _, known := range history.ItemTypes() {
		if known == q.ItemType {
			return q, nil
		}
	}
	return history.Query{}, fmt.Errorf("%w: unknown item type %q", ErrUsage, itemType)
}
