package views

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// RenderText writes page as plain text for terminals: notice, detail panel
// with its hourly table, then the day selector.
func RenderText(w io.Writer, page *Page) error {
	if page.Notice != "" {
		if _, err := fmt.Fprintf(w, "! %s\n\n", page.Notice); err != nil {
			return err
		}
	}

	if d := page.Detail; d != nil {
		if _, err := fmt.Fprintf(w, "%s\n%s°F\n%s%s\n\n", d.Header, d.Temp, d.Weather, d.Icon); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Time\tTemperature (°F)\tFeels Like (°F)\tHumidity (%)\tWind (mph)\tWeather")
		for _, r := range d.Rows {
			fmt.Fprintf(tw, "%s\t%s°F\t%s°F\t%s%%\t%s\t%s %s\n", r.Time, r.Temp, r.FeelsLike, r.Humidity, r.Wind, r.Weather, r.Icon)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	for _, b := range page.Buttons {
		marker := " "
		if b.Selected {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s [%s] %s\n", marker, b.Date, b.String()); err != nil {
			return err
		}
	}
	return nil
}
