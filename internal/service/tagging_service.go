package service

import (
	"bytes"
	"competency_backend/internal/model"
	"competency_backend/internal/repository"
	"competency_backend/internal/util"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type TaggingService struct {
	Repo    *repository.TagRepository
	Storage *StorageService
}

func NewTaggingService(repo *repository.TagRepository, storage *StorageService) *TaggingService {
	return &TaggingService{Repo: repo, Storage: storage}
}

func (s *TaggingService) ListTags() ([]model.Tag, error) {
	return s.Repo.FindAll()
}

func (s *TaggingService) GetTag(id uint) (*model.Tag, error) {
	tag, err := s.Repo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *TaggingService) CreateTag(tag *model.Tag) error {
	if tag.Value == "" || tag.TaxonomyName == "" {
		return util.ErrBlankName
	}
	return s.Repo.Create(tag)
}

func (s *TaggingService) DeleteTag(id uint) error {
	if _, err := s.GetTag(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *TaggingService) ListObjectTags(objectID string) ([]model.ObjectTag, error) {
	if objectID == "" {
		return s.Repo.FindAllObjectTags()
	}
	return s.Repo.FindObjectTags(objectID)
}

// TagObject 给学习单元打标签
func (s *TaggingService) TagObject(objectID string, tagID uint) (*model.ObjectTag, error) {
	if _, err := s.GetTag(tagID); err != nil {
		return nil, err
	}
	objectTag := &model.ObjectTag{ObjectID: objectID, TagID: tagID}
	if err := s.Repo.CreateObjectTag(objectTag); err != nil {
		return nil, err
	}
	return s.Repo.FindObjectTagByID(objectTag.ID)
}

func (s *TaggingService) UntagObject(id uint) error {
	if _, err := s.Repo.FindObjectTagByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrObjectTagNotFound
		}
		return err
	}
	return s.Repo.DeleteObjectTag(id)
}

// ExportTagsCSV 导出全部标签为CSV并归档到对象存储，返回下载地址
func (s *TaggingService) ExportTagsCSV(ctx context.Context) (string, error) {
	tags, err := s.Repo.FindAll()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "taxonomy", "value", "external_id"}); err != nil {
		return "", err
	}
	for _, tag := range tags {
		record := []string{
			strconv.FormatUint(uint64(tag.ID), 10),
			tag.TaxonomyName,
			tag.Value,
			tag.ExternalID,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("tag-exports/tags-%s.csv", time.Now().Format("20060102-150405"))
	return s.Storage.Provider.Upload(ctx, filename, &buf, int64(buf.Len()), "text/csv")
}

// ImportTagsCSV 从CSV批量导入标签，列为 taxonomy,value,external_id（带表头）
func (s *TaggingService) ImportTagsCSV(reader io.Reader) (int, error) {
	r := csv.NewReader(reader)
	records, err := r.ReadAll()
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == "taxonomy" {
			continue
		}
		if len(record) < 2 {
			continue
		}
		tag := &model.Tag{
			TaxonomyName: record[0],
			Value:        record[1],
		}
		if len(record) > 2 {
			tag.ExternalID = record[2]
		}
		if tag.TaxonomyName == "" || tag.Value == "" {
			continue
		}
		if err := s.Repo.Create(tag); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
