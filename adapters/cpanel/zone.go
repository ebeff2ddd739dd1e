package cpanel

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hostmaint/hostmaint/domain/model"
)

// zoneLine is the dumped form of a record. Numeric fields arrive quoted or
// bare depending on the API version.
type zoneLine struct {
	Line       number `yaml:"Line"`
	Type       string `yaml:"type"`
	Name       string `yaml:"name"`
	Class      string `yaml:"class"`
	TTL        number `yaml:"ttl"`
	Address    string `yaml:"address"`
	CName      string `yaml:"cname"`
	Exchange   string `yaml:"exchange"`
	Preference number `yaml:"preference"`
	TxtData    string `yaml:"txtdata"`
}

func (z zoneLine) toModel() model.ZoneRecord {
	return model.ZoneRecord{
		Line:       int(z.Line),
		Type:       model.RecordType(z.Type),
		Name:       z.Name,
		Class:      z.Class,
		TTL:        uint32(z.TTL),
		Address:    z.Address,
		CName:      z.CName,
		Exchange:   z.Exchange,
		Preference: int(z.Preference),
		TxtData:    z.TxtData,
	}
}

// DumpZone returns the records of the zone of domain in line order.
func (c *Client) DumpZone(ctx context.Context, domain string) ([]model.ZoneRecord, error) {
	resp, err := whmapi1[struct {
		Zone []struct {
			Record []zoneLine `yaml:"record"`
		} `yaml:"zone"`
	}](ctx, c, false, "dumpzone", param("domain", domain))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrZoneDump, domain, err)
	}
	if len(resp.Data.Zone) == 0 {
		return nil, fmt.Errorf("%w: %s: empty zone", model.ErrZoneDump, domain)
	}
	out := make([]model.ZoneRecord, 0, len(resp.Data.Zone[0].Record))
	for _, z := range resp.Data.Zone[0].Record {
		out = append(out, z.toModel())
	}
	return out, nil
}

// ZoneRecord reads one line of the zone of domain.
func (c *Client) ZoneRecord(ctx context.Context, domain string, line int) (*model.ZoneRecord, error) {
	resp, err := whmapi1[struct {
		Record []zoneLine `yaml:"record"`
	}](ctx, c, false, "getzonerecord", param("domain", domain), param("line", line))
	if err != nil {
		var ce *model.CommandError
		if errors.As(err, &ce) && errors.Is(err, model.ErrTransportRejected) {
			return nil, fmt.Errorf("%w: %s line %d: %w", model.ErrZoneRecordMissing, domain, line, err)
		}
		return nil, err
	}
	if len(resp.Data.Record) == 0 {
		return nil, fmt.Errorf("%w: %s line %d", model.ErrZoneRecordMissing, domain, line)
	}
	rec := resp.Data.Record[0].toModel()
	if rec.Line == 0 {
		rec.Line = line
	}
	return &rec, nil
}

// EditZoneRecord replaces the line rec.Line of the zone of domain.
func (c *Client) EditZoneRecord(ctx context.Context, domain string, rec model.ZoneRecord) error {
	if rec.Line <= 0 {
		return fmt.Errorf("edit zone record %s: line required", domain)
	}
	params := append([]string{param("domain", domain), param("line", rec.Line)}, recordParams(rec)...)
	_, err := whmapi1[struct{}](ctx, c, true, "editzonerecord", params...)
	return err
}

// AddZoneRecord appends rec to the zone of domain.
func (c *Client) AddZoneRecord(ctx context.Context, domain string, rec model.ZoneRecord) error {
	params := append([]string{param("domain", domain)}, recordParams(rec)...)
	_, err := whmapi1[struct{}](ctx, c, true, "addzonerecord", params...)
	return err
}

func recordParams(rec model.ZoneRecord) []string {
	class := rec.Class
	if class == "" {
		class = "IN"
	}
	params := []string{
		param("name", rec.Name),
		param("class", class),
		param("ttl", rec.TTL),
		param("type", rec.Type),
	}
	switch rec.Type {
	case model.RecordA, model.RecordAAAA:
		params = append(params, param("address", rec.Address))
	case model.RecordCNAME:
		params = append(params, param("cname", rec.CName))
	case model.RecordMX:
		params = append(params, param("exchange", rec.Exchange), param("preference", strconv.Itoa(rec.Preference)))
	case model.RecordTXT:
		params = append(params, param("txtdata", rec.TxtData))
	}
	return params
}
