// Package smsbackup reads Android SMS backup XML files so a message
// history can be replayed through the parsing pipeline in bulk.
package smsbackup

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nikhilbhatia/smsledger/internal/model"
)

type backup struct {
	XMLName xml.Name    `xml:"smses"`
	SMS     []smsRecord `xml:"sms"`
}

type smsRecord struct {
	Address string `xml:"address,attr"`
	Date    string `xml:"date,attr"` // epoch milliseconds
	Body    string `xml:"body,attr"`
}

// ReadFile parses a backup file and returns its messages attributed to
// the given user, in file order. Records with a malformed timestamp are
// skipped rather than failing the whole import.
func ReadFile(path, userID string) ([]model.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}
	return parse(data, userID)
}

func parse(data []byte, userID string) ([]model.RawMessage, error) {
	var b backup
	if err := xml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse backup XML: %w", err)
	}

	msgs := make([]model.RawMessage, 0, len(b.SMS))
	for _, sms := range b.SMS {
		millis, err := strconv.ParseInt(sms.Date, 10, 64)
		if err != nil {
			continue
		}

		msgs = append(msgs, model.RawMessage{
			Sender:      sms.Address,
			Body:        sms.Body,
			ReceivedAt:  time.UnixMilli(millis),
			OwnerUserID: userID,
		})
	}
	return msgs, nil
}
