package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/bytepowered/goes"
	"github.com/sirupsen/logrus"
	"github.com/udprelay/udprelay"
	"sync"
)

type App struct {
	servers []relay.Server
	await   sync.WaitGroup
}

func NewApp() *App {
	return &App{
		await: sync.WaitGroup{},
	}
}

func (a *App) Init(runCtx context.Context, rules []RuleConfig) error {
	// 构建中继服务
	for _, ruleConfig := range rules {
		if ruleConfig.Disabled {
			logrus.Warnf("app: relay rule is disabled: %s", ruleConfig.Description)
			continue
		}
		a.servers = append(a.servers, NewRelayServer(ruleConfig))
	}
	if len(a.servers) == 0 {
		return fmt.Errorf("app: no enabled relay rules")
	}
	// 初始化服务
	for _, srv := range a.servers {
		if err := srv.Init(runCtx); err != nil {
			return fmt.Errorf("app: server init. %w", err)
		}
	}
	return nil
}

func (a *App) Serve(runCtx context.Context) error {
	servCtx, servCancel := context.WithCancel(runCtx)
	defer servCancel()

	servErrors := make(chan error, len(a.servers))
	for _, srv := range a.servers {
		a.await.Add(1)
		psrv := srv
		goes.Go(func() {
			if err := psrv.Serve(servCtx); err == nil || errors.Is(err, context.Canceled) {
				servErrors <- nil
			} else {
				servErrors <- err
			}
			a.await.Done()
		})
	}
	select {
	case err := <-servErrors:
		servCancel()
		return a.term(err)
	case <-runCtx.Done():
		servCancel()
		return a.term(nil)
	}
}

func (a *App) term(err error) error {
	a.await.Wait()
	return err
}
