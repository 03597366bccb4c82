package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/app/appconfig"
	"exusiai.dev/activity-backend/internal/constant"
	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/model/types"
	"exusiai.dev/activity-backend/internal/pkg/async"
	"exusiai.dev/activity-backend/internal/pkg/listbuilder"
	"exusiai.dev/activity-backend/internal/pkg/observability"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/repo"
	"exusiai.dev/activity-backend/internal/util"
)

var (
	ErrMissingRequired = pgerr.NewValidation("missing subject, dueDate, or assignedContact")
	ErrNoOwner         = pgerr.NewValidation("no account or contact set")
)

type Activity struct {
	conf          *appconfig.Config
	DB            *bun.DB
	ActivityRepo  *repo.Activity
	ContactRepo   *repo.Contact
	AccountRepo   *repo.Account
	LookupService *Lookup
	Events        *ActivityEvents
}

func NewActivity(
	conf *appconfig.Config,
	db *bun.DB,
	activityRepo *repo.Activity,
	contactRepo *repo.Contact,
	accountRepo *repo.Account,
	lookupService *Lookup,
	events *ActivityEvents,
) *Activity {
	return &Activity{
		conf:          conf,
		DB:            db,
		ActivityRepo:  activityRepo,
		ContactRepo:   contactRepo,
		AccountRepo:   accountRepo,
		LookupService: lookupService,
		Events:        events,
	}
}

// FlatList is a page of a flat activity list.
type FlatList struct {
	Rows  []map[string]any
	Total int
	Page  int
	Limit int
}

// Fields returns the columns available to flat lists.
func (s *Activity) Fields() listbuilder.Schema {
	return model.ActivityFields
}

// ListFlat returns one page of the projection described by query.
func (s *Activity) ListFlat(ctx context.Context, actor Actor, query *types.ActivityListQuery) (*FlatList, error) {
	timer := prometheus.NewTimer(observability.ActivityListDuration.WithLabelValues(constant.ListModeFlat))
	defer timer.ObserveDuration()

	b := s.ActivityRepo.NewListBuilder()
	if err := listbuilder.Initialize(b, model.ActivityFields, query.Params, s.conf.ListDefaultLimit, s.conf.ListMaxLimit); err != nil {
		return nil, err
	}

	if query.Account > 0 {
		b.Where(model.ActivityFilters["account"], query.Account)
	}
	if query.Contact > 0 {
		b.Where(model.ActivityFilters["contact"], query.Contact)
	}
	if query.Type != "" {
		log.Debug().
			Str("evt.name", "activity.list.filter_ignored").
			Str("type", query.Type).
			Msg("type filter has no join descriptor and is ignored")
	}

	var (
		rows  []map[string]any
		total int
	)
	err := async.WaitAll(
		async.Errable(func() (err error) {
			rows, err = b.Execute(ctx)
			return err
		}),
		async.Errable(func() (err error) {
			total, err = b.Count(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	translated := lo.Filter(b.Fields(), func(f *listbuilder.Field, _ int) bool {
		return f.Type == listbuilder.TypeTranslation
	})
	for _, row := range rows {
		for _, f := range translated {
			name, err := model.ParseI18nString(row[f.Name])
			if err != nil {
				return nil, err
			}
			if name == nil {
				row[f.Name] = nil
			} else {
				row[f.Name] = name.Resolve(actor.Locale, model.FallbackLocale)
			}
		}
	}

	return &FlatList{
		Rows:  rows,
		Total: total,
		Page:  b.CurrentPage(),
		Limit: b.GetLimit(),
	}, nil
}

// List returns every activity with its relations loaded.
func (s *Activity) List(ctx context.Context, actor Actor) ([]*model.Activity, error) {
	timer := prometheus.NewTimer(observability.ActivityListDuration.WithLabelValues(constant.ListModeFull))
	defer timer.ObserveDuration()

	return s.ActivityRepo.GetActivities(ctx)
}

func (s *Activity) Get(ctx context.Context, actor Actor, id int64) (*model.Activity, error) {
	return s.ActivityRepo.GetFullActivityByID(ctx, id)
}

func (s *Activity) Create(ctx context.Context, actor Actor, req *types.ActivityRequest) (*model.Activity, error) {
	activity := &model.Activity{}

	err := s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.apply(ctx, tx, activity, req); err != nil {
			return err
		}
		activity.Stamp(now(), actor.User)

		return s.ActivityRepo.WithTx(tx).CreateActivity(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, actor, EventActivityCreated, activity.ID)

	return s.ActivityRepo.GetFullActivityByID(ctx, activity.ID)
}

// Update applies req to the activity. Optional fields absent from req are
// left untouched.
func (s *Activity) Update(ctx context.Context, actor Actor, id int64, req *types.ActivityRequest) (*model.Activity, error) {
	err := s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		activityRepo := s.ActivityRepo.WithTx(tx)

		activity, err := activityRepo.GetActivityByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.apply(ctx, tx, activity, req); err != nil {
			return err
		}
		activity.Touch(now(), actor.User)

		return activityRepo.UpdateActivity(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, actor, EventActivityUpdated, id)

	return s.ActivityRepo.GetFullActivityByID(ctx, id)
}

func (s *Activity) Delete(ctx context.Context, actor Actor, id int64) error {
	err := s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		activityRepo := s.ActivityRepo.WithTx(tx)

		activity, err := activityRepo.GetActivityByID(ctx, id)
		if err != nil {
			return err
		}

		return activityRepo.DeleteActivity(ctx, activity)
	})
	if err != nil {
		return err
	}

	s.committed(ctx, actor, EventActivityDeleted, id)

	return nil
}

func (s *Activity) committed(ctx context.Context, actor Actor, event string, id int64) {
	observability.ActivityMutations.WithLabelValues(event).Inc()
	log.Info().
		Str("evt.name", "activity."+event).
		Int64("activityId", id).
		Interface("userId", actor.UserID()).
		Msg("activity " + event)
	s.Events.Publish(ctx, event, id, actor)
}

// apply validates req and writes it onto activity. Every reference is
// resolved through db before anything is written.
func (s *Activity) apply(ctx context.Context, db bun.IDB, activity *model.Activity, req *types.ActivityRequest) error {
	if req.Subject == "" || req.DueDate == "" || !req.AssignedContact.Given() || req.AssignedContact.ID == 0 {
		return ErrMissingRequired
	}

	dueDate, ok := util.ParseDate(req.DueDate)
	if !ok {
		return pgerr.NewValidation("invalid dueDate: " + req.DueDate)
	}
	var startDate *time.Time
	if req.StartDate != "" {
		t, ok := util.ParseDate(req.StartDate)
		if !ok {
			return pgerr.NewValidation("invalid startDate: " + req.StartDate)
		}
		startDate = &t
	}

	assignedContact, err := s.ContactRepo.WithTx(db).GetContactByID(ctx, req.AssignedContact.ID)
	if err != nil {
		return err
	}

	var statusID, priorityID, typeID *int64
	if req.ActivityStatus.Given() {
		l, err := s.LookupService.GetActivityStatus(ctx, db, req.ActivityStatus.ID)
		if err != nil {
			return err
		}
		statusID = &l.ID
	}
	if req.ActivityPriority.Given() {
		l, err := s.LookupService.GetActivityPriority(ctx, db, req.ActivityPriority.ID)
		if err != nil {
			return err
		}
		priorityID = &l.ID
	}
	if req.ActivityType.Given() {
		l, err := s.LookupService.GetActivityType(ctx, db, req.ActivityType.ID)
		if err != nil {
			return err
		}
		typeID = &l.ID
	}

	var owner model.Owner
	switch {
	case req.Account.Given():
		account, err := s.AccountRepo.WithTx(db).GetAccountByID(ctx, req.Account.ID)
		if err != nil {
			return err
		}
		owner = model.AccountOwner{ID: account.ID}
	case req.Contact.Given():
		contact, err := s.ContactRepo.WithTx(db).GetContactByID(ctx, req.Contact.ID)
		if err != nil {
			return err
		}
		owner = model.ContactOwner{ID: contact.ID}
	default:
		return ErrNoOwner
	}

	activity.Subject = req.Subject
	if req.Note.Valid {
		activity.Note = req.Note
	}
	activity.DueDate = dueDate
	if startDate != nil {
		activity.StartDate = startDate
	}
	activity.AssignedContactID = assignedContact.ID
	activity.AssignedContact = assignedContact
	if statusID != nil {
		activity.ActivityStatusID = statusID
	}
	if priorityID != nil {
		activity.ActivityPriorityID = priorityID
	}
	if typeID != nil {
		activity.ActivityTypeID = typeID
	}
	activity.SetOwner(owner)

	return nil
}

// now is truncated to the precision postgres stores.
func now() time.Time {
	return time.Now().Truncate(time.Microsecond)
}
