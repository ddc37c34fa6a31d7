package service

import (
	"context"
	"sort"

	"github.com/cydxin/notice-sdk/models"
)

// ReceiverContext resolver 判定时可用的接收者上下文。
// 字段是显式枚举的，不做开放的 map 透传；宿主需要更多维度时在这里加列。
type ReceiverContext struct {
	ReceiverID  int64
	Company     string
	CompanyType string
}

// TypeJudgement 对单个类型名的判定结果
type TypeJudgement struct {
	Name    string
	Allowed bool
}

// AllowedTypesResolver 宿主实现的授权插件：
// 对系统里每一个已知的公告类型/接收者类型名，逐个给出 allow / deny。
// 两个方法收到的 names 都是当前库里全部未删类型名；返回的判定必须覆盖每一个，
// 漏判会被驱动侧当成部署缺陷拒绝服务，而不是静默当成 deny。
type AllowedTypesResolver interface {
	JudgeNoticeTypes(ctx context.Context, rc ReceiverContext, names []string) ([]TypeJudgement, error)
	JudgeReceiverTypes(ctx context.Context, rc ReceiverContext, names []string) ([]TypeJudgement, error)
}

// AllowedTypesService 授权驱动：查全量类型名、调 resolver、核对覆盖面。
type AllowedTypesService struct {
	*Service
	Resolver AllowedTypesResolver
}

func NewAllowedTypesService(s *Service, r AllowedTypesResolver) *AllowedTypesService {
	return &AllowedTypesService{Service: s, Resolver: r}
}

type typeRow struct {
	ID   int64
	Name string
}

// Judge 返回接收者可见的公告类型 id 集合与接收者类型 id 集合。
// resolver 未配置或漏判任一已知类型名时返回错误（fail closed）。
func (s *AllowedTypesService) Judge(ctx context.Context, rc ReceiverContext) (noticeTypeIDs, receiverTypeIDs []int64, err error) {
	if s.Resolver == nil {
		return nil, nil, ErrResolverNotConfigured
	}

	noticeTypeIDs, err = s.judgeOne(ctx, rc, &models.NoticeType{}, s.Resolver.JudgeNoticeTypes)
	if err != nil {
		return nil, nil, err
	}
	receiverTypeIDs, err = s.judgeOne(ctx, rc, &models.ReceiverType{}, s.Resolver.JudgeReceiverTypes)
	if err != nil {
		return nil, nil, err
	}
	return noticeTypeIDs, receiverTypeIDs, nil
}

func (s *AllowedTypesService) judgeOne(
	ctx context.Context,
	rc ReceiverContext,
	model interface{},
	judge func(context.Context, ReceiverContext, []string) ([]TypeJudgement, error),
) ([]int64, error) {
	var rows []typeRow
	if err := notDeleted(s.DB.WithContext(ctx).Model(model)).
		Select("id, name").
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	idByName := make(map[string]int64, len(rows))
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		idByName[r.Name] = r.ID
		names = append(names, r.Name)
	}

	judgements, err := judge(ctx, rc, names)
	if err != nil {
		return nil, err
	}

	judged := make(map[string]bool, len(judgements))
	allowedIDs := make([]int64, 0, len(judgements))
	for _, j := range judgements {
		id, known := idByName[j.Name]
		if !known {
			// 多判未知名字不算错，直接忽略
			continue
		}
		judged[j.Name] = true
		if j.Allowed {
			allowedIDs = append(allowedIDs, id)
		}
	}

	// 每个已知类型名都必须被显式判定过
	for _, name := range names {
		if !judged[name] {
			return nil, ErrIncompleteClassification
		}
	}

	sort.Slice(allowedIDs, func(i, j int) bool { return allowedIDs[i] < allowedIDs[j] })
	return allowedIDs, nil
}
