// Command inspect prints the archived chat events of a relay database.
package main

import (
	"chat-relay/domain"
	"chat-relay/repositories"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/archive", "Path to the relay archive (badger)")
	topic := flag.String("topic", "", "Topic to print, every archived topic when empty")
	limit := flag.Int("limit", 50, "Newest events per topic, 0 for all")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repository := repositories.NewEventRepository(db, logs.GetLoggerFromLevel(slog.LevelWarn))

	topics := []domain.TopicName{domain.TopicName(*topic)}
	if *topic == "" {
		if topics, err = repository.Topics(); err != nil {
			log.Fatal(err)
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Topic", "Time", "Type", "Sender", "Content", "ID"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	total := 0
	for _, name := range topics {
		events, err := repository.GetEvents(name, *limit)
		if err != nil {
			log.Fatalf("Reading %s: %v", name, err)
		}
		for _, evt := range events {
			table.Append([]string{
				string(evt.Topic),
				evt.Timestamp.Format("2006-01-02 15:04:05.000"),
				string(evt.Type),
				evt.Sender,
				strings.ReplaceAll(evt.Content, "\n", " "),
				evt.ID.String()[:8],
			})
		}
		total += len(events)
	}

	table.Render()
	fmt.Printf("\n%d events in %d topics\n", total, len(topics))
}
