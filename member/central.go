package member

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/zone"
)

const (
	DefaultCentralURL = "https://my.zerotier.com"
	TokenEnv          = "ZEROTIER_CENTRAL_TOKEN"

	maxResponseSize = 32 * 1024 * 1024
)

// Central fetches members from the ZeroTier Central API. Construct with NewCentral.
type Central struct {
	baseURL   string
	networkID string
	token     string
	rfc4193   bool
	client    *http.Client
}

// centralMember is the subset of the Central member object zeronsd cares about.
type centralMember struct {
	NodeID string `json:"nodeId"`
	Name   string `json:"name"`
	Config struct {
		Authorized    bool     `json:"authorized"`
		IPAssignments []string `json:"ipAssignments"`
	} `json:"config"`
}

// NewCentral validates the network ID. baseURL defaults to DefaultCentralURL. If rfc4193
// is true every member also gets its RFC4193 address.
func NewCentral(baseURL, networkID, token string, rfc4193 bool, timeout time.Duration) (*Central, error) {
	nw, err := ParseNetworkID(networkID)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, fmt.Errorf("Central API token is empty")
	}
	if len(baseURL) == 0 {
		baseURL = DefaultCentralURL
	}

	return &Central{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		networkID: nw,
		token:     token,
		rfc4193:   rfc4193,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

func (t *Central) String() string {
	return "central:" + t.networkID
}

// Members returns all authorized members of the network. Unauthorized members are not
// reachable so they are never published.
func (t *Central) Members(ctx context.Context) ([]zone.Member, error) {
	url := t.baseURL + "/api/v1/network/" + t.networkID + "/member"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("Central request failed: %w", err)
	}
	req.Header.Set("Authorization", "token "+t.token)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Central fetch failed: %w", dnsutil.ShortenNetError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Central fetch of %s returned %s", t.networkID, resp.Status)
	}

	var cms []centralMember
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize))
	if err := dec.Decode(&cms); err != nil {
		return nil, fmt.Errorf("Central response decode failed: %w", err)
	}

	members := make([]zone.Member, 0, len(cms))
	for _, cm := range cms {
		if !cm.Config.Authorized {
			log.Debugf("Central: skip unauthorized %s", cm.NodeID)
			continue
		}
		m := zone.Member{
			ID:        cm.NodeID,
			Name:      cm.Name,
			Addresses: append([]string{}, cm.Config.IPAssignments...),
		}
		if t.rfc4193 {
			addr, err := RFC4193Addr(t.networkID, cm.NodeID)
			if err != nil {
				return nil, fmt.Errorf("Member %s: %w", cm.NodeID, err)
			}
			m.Addresses = append(m.Addresses, addr.String())
		}
		members = append(members, m)
	}

	return members, nil
}
