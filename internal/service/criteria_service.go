package service

import (
	"competency_backend/internal/model"
	"competency_backend/internal/repository"
	"competency_backend/internal/util"

	"gorm.io/gorm"
)

type CriteriaService struct {
	Groups   *repository.CriteriaGroupRepository
	Criteria *repository.CriteriaRepository
	Tags     *repository.TagRepository
}

func NewCriteriaService(groups *repository.CriteriaGroupRepository, criteria *repository.CriteriaRepository, tags *repository.TagRepository) *CriteriaService {
	return &CriteriaService{
		Groups:   groups,
		Criteria: criteria,
		Tags:     tags,
	}
}

func (s *CriteriaService) ListGroups(parentID *uint) ([]model.CriteriaGroup, error) {
	return s.Groups.FindAll(parentID)
}

func (s *CriteriaService) GetGroup(id uint) (*model.CriteriaGroup, error) {
	group, err := s.Groups.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *CriteriaService) CreateGroup(group *model.CriteriaGroup) error {
	if err := s.validateGroup(group); err != nil {
		return err
	}
	return s.Groups.Create(group)
}

func (s *CriteriaService) UpdateGroup(group *model.CriteriaGroup) error {
	if _, err := s.GetGroup(group.ID); err != nil {
		return err
	}
	if err := s.validateGroup(group); err != nil {
		return err
	}
	return s.Groups.Update(group)
}

func (s *CriteriaService) DeleteGroup(id uint) error {
	if _, err := s.GetGroup(id); err != nil {
		return err
	}
	return s.Groups.Delete(id)
}

func (s *CriteriaService) validateGroup(group *model.CriteriaGroup) error {
	if group.Name == "" {
		return util.ErrBlankName
	}
	// 运算符在创建时就固定为 AND/OR，不留空值到读取时再解释
	switch group.LogicOperator {
	case "":
		group.LogicOperator = model.LogicAnd
	case model.LogicAnd, model.LogicOr:
	default:
		return util.ErrInvalidLogicOperator
	}
	if _, err := s.Tags.FindByID(group.CompetencyTagID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrTagNotFound
		}
		return err
	}
	if group.ParentID != nil {
		if _, err := s.Groups.FindByID(*group.ParentID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrGroupNotFound
			}
			return err
		}
	}
	return nil
}

func (s *CriteriaService) ListCriteria(groupID uint) ([]model.Criterion, error) {
	return s.Criteria.FindAll(groupID)
}

func (s *CriteriaService) GetCriterion(id uint) (*model.Criterion, error) {
	criterion, err := s.Criteria.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCriterionNotFound
		}
		return nil, err
	}
	return criterion, nil
}

func (s *CriteriaService) CreateCriterion(criterion *model.Criterion) error {
	if err := s.validateCriterion(criterion); err != nil {
		return err
	}
	return s.Criteria.Create(criterion)
}

func (s *CriteriaService) UpdateCriterion(criterion *model.Criterion) error {
	if _, err := s.GetCriterion(criterion.ID); err != nil {
		return err
	}
	if err := s.validateCriterion(criterion); err != nil {
		return err
	}
	return s.Criteria.Update(criterion)
}

func (s *CriteriaService) DeleteCriterion(id uint) error {
	if _, err := s.GetCriterion(id); err != nil {
		return err
	}
	return s.Criteria.Delete(id)
}

func (s *CriteriaService) validateCriterion(criterion *model.Criterion) error {
	switch criterion.RuleType {
	case model.RuleTypeGrade, model.RuleTypeMasteryLevel:
	default:
		return util.ErrInvalidRuleType
	}
	switch criterion.RetakeRule {
	case model.RetakeSimpleAverage, model.RetakeWeightedAverage, model.RetakeDecayingAverage,
		model.RetakeMostRecent, model.RetakeHighest:
	default:
		return util.ErrInvalidRetakeRule
	}
	if _, err := s.Groups.FindByID(criterion.GroupID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrGroupNotFound
		}
		return err
	}
	if _, err := s.Tags.FindObjectTagByID(criterion.ObjectTagID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrObjectTagNotFound
		}
		return err
	}
	if _, err := s.Tags.FindByID(criterion.CompetencyTagID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrTagNotFound
		}
		return err
	}
	return nil
}
