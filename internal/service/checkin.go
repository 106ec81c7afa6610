package service

import (
	"context"
	"sync"
	"time"

	"PrivateCheck/internal/checkin"
	"PrivateCheck/internal/model"
	"PrivateCheck/internal/widget"
)

type CheckInService struct {
	engine *checkin.Engine
}

var (
	checkInService *CheckInService
	checkInOnce    sync.Once
)

func CheckIn() *CheckInService {
	checkInOnce.Do(func() {
		checkInService = &CheckInService{
			engine: checkin.NewEngine(settingsRepo(), widget.NewEventRefresher()),
		}
	})

	return checkInService
}

// Complete 今日打卡
func (s *CheckInService) Complete(ctx context.Context) (checkin.Result, error) {
	return s.engine.PerformCheckIn(ctx, time.Now())
}

// Today 查询当天打卡状态与连胜
func (s *CheckInService) Today(ctx context.Context) (model.CheckInState, bool, error) {
	state, err := s.engine.State(ctx)
	if err != nil {
		return model.CheckInState{}, false, err
	}

	return state, state.CheckedInOn(time.Now().Format(model.DateLayout)), nil
}

// History 全部打卡历史
func (s *CheckInService) History(ctx context.Context) ([]string, error) {
	state, err := s.engine.State(ctx)
	if err != nil {
		return nil, err
	}
	return state.History, nil
}
