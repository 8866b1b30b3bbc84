package queue

import (
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/service"
)

type Queue struct {
	sp  repository.ScheduledPostRepository
	sa  repository.SocialAccountRepository
	au  repository.AuditRepository
	pub service.PublisherService
}

func NewQueue(
	sp repository.ScheduledPostRepository,
	sa repository.SocialAccountRepository,
	au repository.AuditRepository,
	pub service.PublisherService) *Queue {
	return &Queue{
		sp:  sp,
		sa:  sa,
		au:  au,
		pub: pub,
	}
}

const TaskTypePublishPost = "scheduler:publish"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
