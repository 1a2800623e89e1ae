package repositories

import (
	"github.com/delpresence/backend/internal/database"
	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupRepository reads Groups for a Program.
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{db: database.GetDB()}
}

func (r *GroupRepository) FindByProgramID(programID string) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Where("program_id = ?", programID).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// TeachingRecordRepository reads the weekly class meetings that the
// Workload Expander turns into exam units.
type TeachingRecordRepository struct {
	db *gorm.DB
}

func NewTeachingRecordRepository() *TeachingRecordRepository {
	return &TeachingRecordRepository{db: database.GetDB()}
}

func (r *TeachingRecordRepository) FindByGroupIDs(groupIDs []string) ([]models.TeachingRecord, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var records []models.TeachingRecord
	if err := r.db.Where("group_id IN ?", groupIDs).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *TeachingRecordRepository) FindByGroupID(groupID string) ([]models.TeachingRecord, error) {
	var records []models.TeachingRecord
	if err := r.db.Where("group_id = ?", groupID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *TeachingRecordRepository) FindByCourseID(courseID string) ([]models.TeachingRecord, error) {
	var records []models.TeachingRecord
	if err := r.db.Where("course_id = ?", courseID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// UpsertMany creates or updates teaching records by id, the write side of
// the legacy teaching-schedule import job.
func (r *TeachingRecordRepository) UpsertMany(records []models.TeachingRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"period_id", "course_id", "group_id", "teacher_id", "room_id", "day_of_week", "start_time", "end_time", "updated_at"}),
	}).Create(&records).Error
}

// CourseRepository reads Course rows (exam mode lookup, existence checks).
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{db: database.GetDB()}
}

func (r *CourseRepository) FindByID(id string) (*models.Course, error) {
	var c models.Course
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) FindByIDs(ids []string) ([]models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var courses []models.Course
	if err := r.db.Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// JuryPermissionRepository reads JuryPermission rows for the Juror Assigner.
type JuryPermissionRepository struct {
	db *gorm.DB
}

func NewJuryPermissionRepository() *JuryPermissionRepository {
	return &JuryPermissionRepository{db: database.GetDB()}
}

func (r *JuryPermissionRepository) FindByCourseID(courseID string) ([]models.JuryPermission, error) {
	var perms []models.JuryPermission
	if err := r.db.Where("course_id = ?", courseID).Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// TeacherRepository reads Teacher rows for invigilator/juror candidate pools.
type TeacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository() *TeacherRepository {
	return &TeacherRepository{db: database.GetDB()}
}

func (r *TeacherRepository) FindActive() ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.db.Where("disabled = ?", false).Order("id asc").Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *TeacherRepository) FindByID(id string) (*models.Teacher, error) {
	var t models.Teacher
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeacherRepository) FindByIDs(ids []string) ([]models.Teacher, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var teachers []models.Teacher
	if err := r.db.Where("id IN ?", ids).Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

// RoomRepository reads Room rows and ComputerLab tags for the Slot & Room Picker.
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{db: database.GetDB()}
}

func (r *RoomRepository) FindEnabled() ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.Where("disabled = ?", false).Order("id asc").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) FindByIDs(ids []string) ([]models.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []models.Room
	if err := r.db.Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) ComputerLabIDs() (map[string]bool, error) {
	var tags []models.RoomComputerLab
	if err := r.db.Find(&tags).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t.RoomID] = true
	}
	return set, nil
}
