package seed

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/repo"
)

var (
	defaultStatuses = []model.I18nString{
		{"en": "Open", "fr": "Ouvert", "ja": "未着手", "zh": "待处理"},
		{"en": "In progress", "fr": "En cours", "ja": "進行中", "zh": "进行中"},
		{"en": "Done", "fr": "Terminé", "ja": "完了", "zh": "已完成"},
	}
	defaultPriorities = []model.I18nString{
		{"en": "Low", "fr": "Basse", "ja": "低", "zh": "低"},
		{"en": "Normal", "fr": "Normale", "ja": "中", "zh": "中"},
		{"en": "High", "fr": "Haute", "ja": "高", "zh": "高"},
	}
	defaultTypes = []model.I18nString{
		{"en": "Call", "fr": "Appel", "ja": "電話", "zh": "电话"},
		{"en": "Email", "fr": "E-mail", "ja": "メール", "zh": "邮件"},
		{"en": "Meeting", "fr": "Réunion", "ja": "会議", "zh": "会议"},
		{"en": "Task", "fr": "Tâche", "ja": "タスク", "zh": "任务"},
	}
)

func run(ctx context.Context, deps CommandDeps, username, locale string) error {
	if err := seedLookups(ctx, deps.StatusRepo, defaultStatuses, func(name model.I18nString) *model.ActivityStatus {
		return &model.ActivityStatus{Name: name}
	}); err != nil {
		return err
	}
	if err := seedLookups(ctx, deps.PriorityRepo, defaultPriorities, func(name model.I18nString) *model.ActivityPriority {
		return &model.ActivityPriority{Name: name}
	}); err != nil {
		return err
	}
	if err := seedLookups(ctx, deps.TypeRepo, defaultTypes, func(name model.I18nString) *model.ActivityType {
		return &model.ActivityType{Name: name}
	}); err != nil {
		return err
	}

	_, err := deps.UserRepo.GetUserByUsername(ctx, username)
	if err == nil {
		log.Info().
			Str("evt.name", "cli.seed.user_exists").
			Str("username", username).
			Msg("bootstrap user already exists, skipping")
		return nil
	} else if !errors.Is(err, pgerr.ErrNotFound) {
		return err
	}

	user, err := deps.UserService.CreateUser(ctx, username, locale)
	if err != nil {
		return err
	}

	// the key is only ever shown here
	log.Info().
		Str("evt.name", "cli.seed.user_created").
		Str("username", user.Username).
		Str("apiKey", user.APIKey).
		Msg("bootstrap user created; authenticate with `Authorization: Token <apiKey>`")
	return nil
}

func seedLookups[T any](ctx context.Context, r *repo.Lookup[T], names []model.I18nString, build func(model.I18nString) *T) error {
	seeded, err := r.Any(ctx)
	if err != nil {
		return err
	}
	if seeded {
		log.Info().
			Str("evt.name", "cli.seed.lookups_exist").
			Str("entity", r.Entity()).
			Msg("lookups already seeded, skipping")
		return nil
	}

	for _, name := range names {
		if err := r.Create(ctx, build(name)); err != nil {
			return err
		}
	}

	log.Info().
		Str("evt.name", "cli.seed.lookups_created").
		Str("entity", r.Entity()).
		Int("count", len(names)).
		Msg("lookups seeded")
	return nil
}
