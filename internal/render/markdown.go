// Package render turns reports into markdown documents and, for terminals,
// into styled output.
package render

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/mmynk/costsplits/internal/calculator"
	"github.com/mmynk/costsplits/internal/models"
	"github.com/mmynk/costsplits/internal/service"
	"github.com/mmynk/costsplits/internal/storage"
)

const defaultTitle = "Cost Splits"

func title(p models.Pool) string {
	if p.Name != "" {
		return p.Name
	}
	return defaultTitle
}

// SummaryMarkdown renders the summary table and the suggested settlements.
func SummaryMarkdown(r *service.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title(r.Pool))
	if len(r.Pool.People) == 0 {
		doc.PlainText("No people yet.")
		return doc.String()
	}

	doc.H2("Summary")
	doc.Table(summaryTable(r.Pool.People, r.Summary))

	if len(r.Settlements) > 0 {
		doc.H2("Suggested Settlements")
		doc.BulletList(settlementLines(r.Pool.People, r.Settlements)...)
	}

	return doc.String()
}

func summaryTable(people []string, s calculator.Summary) md.TableSet {
	table := md.TableSet{
		Header: []string{"Person", "Total Paid", "Total Cost", "Total Owed"},
	}

	var totalPaid, totalOwed, totalNet float64
	for i, name := range people {
		totalPaid += s.Paid[i]
		totalOwed += s.Owed[i]
		totalNet += s.Net[i]
		table.Rows = append(table.Rows, []string{
			name,
			Dollars(s.Paid[i]),
			Dollars(s.Owed[i]),
			Signed(s.Net[i]),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		md.Bold(Dollars(totalPaid)),
		md.Bold(Dollars(totalOwed)),
		md.Bold(Signed(totalNet)),
	})
	return table
}

// settlementLines formats each transfer as "<from> pays <to> $x.yy".
func settlementLines(people []string, settlements []calculator.Settlement) []string {
	lines := make([]string, 0, len(settlements))
	for _, s := range settlements {
		lines = append(lines, fmt.Sprintf("%s pays %s %s", nameAt(people, s.From), nameAt(people, s.To), Dollars(s.Amount)))
	}
	return lines
}

func nameAt(people []string, i int) string {
	if i < 0 || i >= len(people) {
		return ""
	}
	return people[i]
}

// DetailsMarkdown renders each participant's share of every transaction,
// with item rows under itemized transactions.
func DetailsMarkdown(r *service.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title(r.Pool))
	doc.H2("Split Details")
	if len(r.Details.Transactions) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}

	table := md.TableSet{
		Header: append([]string{"Transaction"}, r.Pool.People...),
	}
	for _, t := range r.Details.Transactions {
		table.Rows = append(table.Rows, shareRow(fmt.Sprintf("%s - %s", t.Name, Dollars(t.Cost)), t.Shares))
		for _, item := range t.Items {
			table.Rows = append(table.Rows, shareRow(fmt.Sprintf("↳ %s - %s", item.Label, Dollars(item.Cost)), item.Shares))
		}
	}
	totals := []string{md.Bold("Total")}
	for _, v := range r.Details.Totals {
		totals = append(totals, md.Bold(Dollars(v)))
	}
	table.Rows = append(table.Rows, totals)
	doc.Table(table)

	return doc.String()
}

func shareRow(label string, shares []float64) []string {
	row := []string{label}
	for _, v := range shares {
		row = append(row, Dollars(v))
	}
	return row
}

// PersonMarkdown renders what one person paid, shared and has to settle.
func PersonMarkdown(r *service.PersonReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	people := r.Pool.People

	doc.H1(r.Name)

	if len(r.Paid) > 0 {
		doc.H3("Paid Transactions")
		table := transactionsTable("Cost")
		var total float64
		for _, t := range r.Paid {
			total += t.Cost
			table.Rows = append(table.Rows, []string{t.Name, nameAt(people, t.Payer), Dollars(t.Cost)})
		}
		table.Rows = append(table.Rows, totalRow(total))
		doc.Table(table)
	} else {
		doc.PlainText(r.Name + " didn't pay for any transactions.")
	}

	if len(r.Shared) > 0 {
		doc.H3("Shared Splits")
		table := transactionsTable("Share")
		var total float64
		for _, t := range r.Shared {
			total += t.Share
			table.Rows = append(table.Rows, []string{t.Name, nameAt(people, t.Payer), Dollars(t.Share)})
		}
		table.Rows = append(table.Rows, totalRow(total))
		doc.Table(table)
	} else {
		doc.PlainText(r.Name + " wasn't involved in any cost splits.")
	}

	if len(r.Settlements) > 0 {
		doc.H3("Settlement Plan")
		table := md.TableSet{
			Header: []string{"From", "To", "Amount"},
		}
		var total float64
		for _, s := range r.Settlements {
			total += s.Amount
			table.Rows = append(table.Rows, []string{nameAt(people, s.From), nameAt(people, s.To), Dollars(s.Amount)})
		}
		table.Rows = append(table.Rows, totalRow(total))
		doc.Table(table)
	} else {
		doc.PlainText(r.Name + " has no settlements.")
	}

	return doc.String()
}

func transactionsTable(amountHeader string) md.TableSet {
	return md.TableSet{
		Header: []string{"Name", "Paid By", amountHeader},
	}
}

func totalRow(total float64) []string {
	return []string{md.Bold("Total"), "", md.Bold(Dollars(total))}
}

// PoolsMarkdown renders the list of saved pools.
func PoolsMarkdown(pools []storage.PoolInfo) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Saved Pools")
	if len(pools) == 0 {
		doc.PlainText("No saved pools.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Pool", "People", "Transactions", "Updated"},
	}
	for _, p := range pools {
		table.Rows = append(table.Rows, []string{
			p.Name,
			fmt.Sprint(p.People),
			fmt.Sprint(p.Transactions),
			time.Unix(p.UpdatedAt, 0).UTC().Format(time.DateTime),
		})
	}
	doc.Table(table)

	return doc.String()
}
