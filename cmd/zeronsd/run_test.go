package main

import (
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/member"
	"github.com/markdingo/zeronsd/mock"
)

func TestRun(t *testing.T) {
	testCases := []string{
		"Zone Authority: zt.example.",
		"Watching",
		programName,
		"Ready",
		"Stats: Uptime",
		"Stats: Sync passes=",
		"Stats: Total q=0",
		"Stats: A q=0",
		"Stats: AAAA q=0",
		"Stats: PTR q=0",
		"log-queries=false",
		"log-queries=true",
		"SIGHUP sync initiated",
		"Forced sync: serial 1->6",
		"Hosts change sync",
		"initiates shutdown",
		"All Listen servers stopped",
	}

	out := &mock.IOWriter{}
	log.SetOut(out)
	log.SetLevel(log.MinorLevel)
	defer log.SetLevel(log.MajorLevel)

	zd := newSyncTest(t, member.Static(testMembers), testHosts)
	zd.cfg.watchHosts = true
	zd.cfg.syncInterval = time.Hour
	zd.cfg.reportInterval = time.Second
	go zd.Run()
	time.Sleep(time.Millisecond * 1500) // Give stats report time to trigger

	for _, sig := range []os.Signal{syscall.SIGUSR1, syscall.SIGUSR2, syscall.SIGUSR2, syscall.SIGHUP} {
		zd.sig <- sig
		time.Sleep(time.Millisecond * 100)
	}
	waitForPasses(t, zd, 1)

	err := os.WriteFile(zd.cfg.hostsFile, []byte(testHosts+"192.0.2.10 scanner\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	waitForPasses(t, zd, 2)

	zd.sig <- syscall.SIGTERM
	<-zd.Done()
	time.Sleep(time.Millisecond * 200)
	got := out.String()
	for _, s := range testCases {
		if !strings.Contains(got, s) {
			t.Error("Does not contain", s)
		}
	}
	if t.Failed() {
		t.Log(got)
	}
}
