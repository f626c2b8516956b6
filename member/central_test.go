package member

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const centralReply = `[
 {"id":"8056c2e21c000001-efcc1b0947","nodeId":"efcc1b0947","name":"laptop",
  "config":{"authorized":true,"ipAssignments":["10.147.17.5"]}},
 {"nodeId":"a1b2c3d4e5","name":"",
  "config":{"authorized":true,"ipAssignments":["10.147.17.6","fd00::6"]}},
 {"nodeId":"0000000bad","name":"intruder",
  "config":{"authorized":false,"ipAssignments":["10.147.17.99"]}}
]`

func newCentralServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/network/8056c2e21c000001/member" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "token sekrit" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestCentralMembers(t *testing.T) {
	srv := newCentralServer(t, http.StatusOK, centralReply)
	c, err := NewCentral(srv.URL+"/", "8056C2E21C000001", "sekrit", false, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "central:8056c2e21c000001" {
		t.Error("String", c.String())
	}

	members, err := c.Members(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Fatal("Unauthorized member should be skipped", members)
	}
	if members[0].ID != "efcc1b0947" || members[0].Name != "laptop" ||
		len(members[0].Addresses) != 1 || members[0].Addresses[0] != "10.147.17.5" {
		t.Error("First member wrong", members[0])
	}
	if members[1].Name != "" || len(members[1].Addresses) != 2 {
		t.Error("Second member wrong", members[1])
	}
}

func TestCentralRFC4193(t *testing.T) {
	srv := newCentralServer(t, http.StatusOK, centralReply)
	c, _ := NewCentral(srv.URL, "8056c2e21c000001", "sekrit", true, time.Second)
	members, err := c.Members(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	a := members[0].Addresses
	if len(a) != 2 || a[1] != "fd80:56c2:e21c:0:199:93ef:cc1b:947" {
		t.Error("RFC4193 address missing or wrong", a)
	}
}

func TestCentralErrors(t *testing.T) {
	testCases := []struct {
		status int
		body   string
		token  string
		expect string
	}{
		{http.StatusOK, centralReply, "wrong", "401"},
		{http.StatusInternalServerError, "", "sekrit", "500"},
		{http.StatusOK, "{not json", "sekrit", "decode"},
	}

	for ix, tc := range testCases {
		srv := newCentralServer(t, tc.status, tc.body)
		c, err := NewCentral(srv.URL, "8056c2e21c000001", tc.token, false, time.Second)
		if err != nil {
			t.Fatal(ix, err)
		}
		_, err = c.Members(context.Background())
		if err == nil {
			t.Error(ix, "Expected error")
			continue
		}
		if !strings.Contains(err.Error(), tc.expect) {
			t.Error(ix, "Error should mention", tc.expect, "not", err)
		}
	}
}

func TestNewCentral(t *testing.T) {
	if _, err := NewCentral("", "123", "tok", false, 0); err == nil {
		t.Error("Bad network ID accepted")
	}
	if _, err := NewCentral("", "1234567891011121", "", false, 0); err == nil {
		t.Error("Empty token accepted")
	}
	c, err := NewCentral("", "1234567891011121", "tok", false, 0)
	if err != nil || c.baseURL != DefaultCentralURL {
		t.Error("Default URL not applied", err)
	}
}

func TestCentralCancelled(t *testing.T) {
	srv := newCentralServer(t, http.StatusOK, centralReply)
	c, _ := NewCentral(srv.URL, "8056c2e21c000001", "sekrit", false, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Members(ctx); err == nil {
		t.Error("Cancelled context should fail the fetch")
	}
}
