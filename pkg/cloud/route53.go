// Package cloud enumerates probe targets from managed DNS zones. Route53
// record sets become the URL list when no local input is given.
package cloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"

	"github.com/wafscout/wafscout/pkg/input"
)

// Route53API is the subset of the Route53 client the source needs.
// Satisfied by *route53.Client; tests supply fakes.
type Route53API interface {
	ListHostedZones(ctx context.Context, in *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error)
	ListResourceRecordSets(ctx context.Context, in *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
}

// Route53Source yields URLs from hosted-zone record listings.
type Route53Source struct {
	api     Route53API
	zoneID  string // empty = all zones
	maxURLs int    // cap applied during enumeration; <=0 = unlimited
}

// NewRoute53Source builds a source. zoneID narrows enumeration to one
// hosted zone; maxURLs stops paging early once enough records are seen.
func NewRoute53Source(api Route53API, zoneID string, maxURLs int) *Route53Source {
	return &Route53Source{api: api, zoneID: zoneID, maxURLs: maxURLs}
}

// URLs lists A, AAAA, and CNAME record sets across the selected zones and
// converts record names to https:// URLs, deduplicated in listing order.
func (s *Route53Source) URLs(ctx context.Context) ([]string, error) {
	zoneIDs, err := s.zoneIDs(ctx)
	if err != nil {
		return nil, err
	}

	var urls []string
	seen := make(map[string]bool)
	for _, id := range zoneIDs {
		done, err := s.appendZoneURLs(ctx, id, seen, &urls)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return urls, nil
}

func (s *Route53Source) zoneIDs(ctx context.Context) ([]string, error) {
	if s.zoneID != "" {
		return []string{s.zoneID}, nil
	}

	var ids []string
	in := &route53.ListHostedZonesInput{}
	for {
		out, err := s.api.ListHostedZones(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("list hosted zones: %w", err)
		}
		for _, zone := range out.HostedZones {
			ids = append(ids, aws.ToString(zone.Id))
		}
		if !out.IsTruncated || out.NextMarker == nil {
			return ids, nil
		}
		in.Marker = out.NextMarker
	}
}

// appendZoneURLs pages through one zone's record sets. Returns done=true
// once the URL cap is reached.
func (s *Route53Source) appendZoneURLs(ctx context.Context, zoneID string, seen map[string]bool, urls *[]string) (bool, error) {
	in := &route53.ListResourceRecordSetsInput{HostedZoneId: aws.String(zoneID)}
	for {
		out, err := s.api.ListResourceRecordSets(ctx, in)
		if err != nil {
			return false, fmt.Errorf("list record sets for zone %s: %w", zoneID, err)
		}
		for _, rr := range out.ResourceRecordSets {
			u, ok := recordURL(rr)
			if !ok || seen[u] {
				continue
			}
			seen[u] = true
			*urls = append(*urls, u)
			if s.maxURLs > 0 && len(*urls) >= s.maxURLs {
				return true, nil
			}
		}
		if !out.IsTruncated {
			return false, nil
		}
		in.StartRecordName = out.NextRecordName
		in.StartRecordType = out.NextRecordType
		in.StartRecordIdentifier = out.NextRecordIdentifier
	}
}

// recordURL converts a record set into a probe URL. Only address-bearing
// types are probed; wildcard records have no concrete hostname to request.
func recordURL(rr types.ResourceRecordSet) (string, bool) {
	switch rr.Type {
	case types.RRTypeA, types.RRTypeAaaa, types.RRTypeCname:
	default:
		return "", false
	}
	name := strings.TrimSuffix(aws.ToString(rr.Name), ".")
	if name == "" || strings.Contains(name, `\052`) {
		return "", false
	}
	return input.Normalize(name), true
}
