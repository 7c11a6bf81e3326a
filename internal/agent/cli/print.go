package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/Altair788/AdHub/internal/shared/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func printAccount(w io.Writer, a models.Account) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "id:\t%d\n", a.ID)
	fmt.Fprintf(tw, "email:\t%s\n", a.Email)
	fmt.Fprintf(tw, "name:\t%s %s\n", a.FirstName, a.LastName)
	fmt.Fprintf(tw, "role:\t%s\n", a.Role)
	fmt.Fprintf(tw, "active:\t%t\n", a.IsActive)
	fmt.Fprintf(tw, "phone:\t%s\n", orDash(a.Phone))
	fmt.Fprintf(tw, "country:\t%s\n", a.Country)
	fmt.Fprintf(tw, "created:\t%s\n", a.CreatedAt.Format(time.RFC3339))
	return tw.Flush()
}

func printAd(w io.Writer, a models.Ad) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "id:\t%d\n", a.ID)
	fmt.Fprintf(tw, "title:\t%s\n", a.Title)
	fmt.Fprintf(tw, "price:\t%d\n", a.Price)
	fmt.Fprintf(tw, "description:\t%s\n", a.Description)
	fmt.Fprintf(tw, "image:\t%s\n", orDash(a.Image))
	fmt.Fprintf(tw, "author:\t%d\n", a.Author)
	fmt.Fprintf(tw, "created:\t%s\n", a.CreatedAt.Format(time.RFC3339))
	return tw.Flush()
}

// printPageFooter выводит общее число записей и номера соседних страниц.
func printPageFooter(w io.Writer, count int, page int, next, prev *string) {
	if page < 1 {
		page = 1
	}
	fmt.Fprintf(w, "total: %d, page: %d", count, page)
	if prev != nil {
		fmt.Fprintf(w, ", prev: %d", page-1)
	}
	if next != nil {
		fmt.Fprintf(w, ", next: %d", page+1)
	}
	fmt.Fprintln(w)
}

func printAds(w io.Writer, p models.Page[models.Ad], page int) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tAUTHOR\tCREATED")
	for _, a := range p.Results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", a.ID, a.Title, a.Price, a.Author, a.CreatedAt.Format(time.DateTime))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printPageFooter(w, p.Count, page, p.Next, p.Previous)
	return nil
}

func printReviews(w io.Writer, p models.Page[models.Review], page int) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tAD\tRATING\tAUTHOR\tTEXT")
	for _, r := range p.Results {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\n", r.ID, r.Ad, strconv.Itoa(r.Rating)+"/5", r.Author, r.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printPageFooter(w, p.Count, page, p.Next, p.Previous)
	return nil
}
