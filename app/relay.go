package app

import (
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/udprelay/udprelay"
	"github.com/udprelay/udprelay/helper"
	"github.com/udprelay/udprelay/internal"
	"github.com/udprelay/udprelay/net"
	"net/netip"
	"time"
)

var (
	_ relay.Server = (*RelayServer)(nil)
)

type RelayServer struct {
	config RuleConfig
	spec   net.ListenerSpec
	dests  []netip.AddrPort
}

func NewRelayServer(ruleConfig RuleConfig) *RelayServer {
	if len(ruleConfig.Description) == 0 {
		ruleConfig.Description = fmt.Sprintf("relay-%s", ruleConfig.Listen)
	}
	return &RelayServer{
		config: ruleConfig,
	}
}

func (s *RelayServer) Init(ctx context.Context) error {
	if len(s.config.Listen) == 0 {
		return fmt.Errorf("relay: missing listener specification, desc: %s", s.config.Description)
	}
	if len(s.config.Destinations) == 0 {
		return fmt.Errorf("relay: missing destination address, desc: %s", s.config.Description)
	}
	spec, err := net.ParseListenerSpec(s.config.Listen)
	if err != nil {
		return fmt.Errorf("relay: invalid listener %q. %w", s.config.Listen, err)
	}
	dests, err := net.ParseDestinations(s.config.Destinations)
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	s.spec = spec
	s.dests = dests
	logrus.Infof("relay: init: %s -> %s, desc: %s", spec, s.config.Destinations, s.config.Description)
	return nil
}

func (s *RelayServer) Serve(ctx context.Context) error {
	ctx = internal.SetupRelayContextLogger(ctx, s.spec.String())
	forwarder, err := internal.NewForwarder(ctx, s.spec, s.dests)
	if err != nil {
		return fmt.Errorf("relay: open %s. %w", s.spec, err)
	}
	defer helper.Close(forwarder)
	defer func() {
		relay.Logger(ctx).Infof("relay: serve term, duration: %s", time.Since(internal.StartTimeOf(ctx)))
	}()
	return forwarder.Serve(ctx)
}
