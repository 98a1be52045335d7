package service

import (
	"github.com/kankrittapon/calendar/internal/config"
	"github.com/kankrittapon/calendar/internal/domain/contract"
)

type Instance struct {
	Chat     *chatService
	Schedule *scheduleService
	Admin    *adminService
	Digest   *digestService
}

func NewInstance(dm contract.DataManager, slackClient contract.SlackClient, cfg *config.Config) *Instance {
	messenger := newMessenger(slackClient, cfg.SendTimeout)
	scheduleService := newScheduleService(dm, messenger)

	return &Instance{
		Chat:     newChatService(dm, messenger, scheduleService, cfg.Location()),
		Schedule: scheduleService,
		Admin:    newAdminService(dm),
		Digest:   newDigestService(dm, messenger, cfg.Location(), cfg.DailyDigestTime, cfg.TomorrowDigestTime, cfg.ReminderMinutes),
	}
}
