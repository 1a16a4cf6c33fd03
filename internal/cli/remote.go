package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (a *App) remoteDevices(ctx context.Context, args []string) error {
	if err := exactArgs(args, 0, "no arguments"); err != nil {
		return err
	}
	records, err := a.backend.GetDevices(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tROOM\tPOWER\tSTATUS")
	for _, r := range records {
		power := "off"
		if r.IsOn {
			power = "on"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Type, r.Room, power, r.Status)
	}
	return tw.Flush()
}

func (a *App) remoteDashboard(ctx context.Context, args []string) error {
	if err := exactArgs(args, 0, "no arguments"); err != nil {
		return err
	}
	dash, err := a.backend.Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s plan): %d active devices in %d rooms\n",
		dash.User.Name, dash.User.Plan, dash.User.ActiveDevices, dash.User.Rooms)
	fmt.Fprintf(a.out, "Subscription: %s, %d/%d devices\n",
		dash.Subscription.Current.Plan, dash.Subscription.Current.Used, dash.Subscription.Current.Limit)

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tDEVICES")
	for _, c := range dash.Categories {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.DeviceCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backend devices: %d\n", len(dash.Devices))
	for _, s := range dash.Scenes {
		fmt.Fprintf(a.out, "Scene: %s - %s\n", s.Name, s.Description)
	}
	return nil
}
