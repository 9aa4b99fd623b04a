package migration

import (
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/pkg/logger"
	"gorm.io/gorm"
)

// Run migrates the schema and seeds the settings documents that the app
// expects to exist on first boot.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Member{},
		&domain.JoinRequest{},
		&domain.AttendanceRecord{},
		&domain.BoardCategory{},
		&domain.BoardPost{},
		&domain.BoardComment{},
		&domain.SettingsDocument{},
	); err != nil {
		return err
	}
	return seedSettings(db)
}

// seedSettings writes the default documents only when absent, so a
// redeploy never clobbers admin edits.
func seedSettings(db *gorm.DB) error {
	settings := repository.NewSettingsRepository(db)

	seeds := []struct {
		name  string
		value interface{}
	}{
		{domain.DocHymns, defaultHymns()},
		{domain.DocSchedules, defaultSchedules()},
		{domain.DocMenuConfig, domain.DefaultMenuConfig()},
		{domain.DocRoles, domain.DefaultRoleCatalog},
		{domain.DocAdvertisement, domain.Advertisement{}},
		{domain.DocOpeningHymns, []domain.OpeningHymn{}},
	}

	for _, seed := range seeds {
		var count int64
		if err := db.Model(&domain.SettingsDocument{}).
			Where("name = ?", seed.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := settings.Replace(seed.name, seed.value); err != nil {
			return err
		}
		logger.Info("기본 설정 문서 생성: %s", seed.name)
	}
	return nil
}

func defaultHymns() []domain.Hymn {
	return []domain.Hymn{
		{Month: 1, Week: 1, Title: "시온의 영광이 빛나는 아침", Composer: "L. Mason"},
		{Month: 1, Week: 2, Title: "내 영혼이 은총 입어", Composer: "J.M. Black"},
		{Month: 1, Week: 3, Title: "주 하나님 지으신 모든 세계", Composer: "Swedish Folk Melody"},
		{Month: 1, Week: 4, Title: "참 아름다워라", Composer: "F.L. Sheppard"},
		{Month: 2, Week: 1, Title: "만유의 주재", Composer: "Silesian Folk Melody"},
		{Month: 2, Week: 2, Title: "빛의 사자들", Composer: "H.S. Perkins"},
		{Month: 2, Week: 3, Title: "내 모든 소원 기도의 제목", Composer: "H.D. Loes"},
		{Month: 2, Week: 4, Title: "구주와 함께 나 죽었으니", Composer: "D.W. Whittle"},
		{Month: 3, Week: 1, Title: "예수 부활했으니", Composer: "Lyra Davidica"},
		{Month: 3, Week: 2, Title: "무덤에 머물러", Composer: "R. Lowry"},
		{Month: 3, Week: 3, Title: "할렐루야 우리 예수", Composer: "P.P. Bliss"},
		{Month: 3, Week: 4, Title: "주님께 영광", Composer: "G.F. Handel"},
		{Month: 4, Week: 1, Title: "내 주를 가까이 하게 함은", Composer: "L. Mason"},
		{Month: 4, Week: 2, Title: "주 예수보다 더 귀한 것은 없네", Composer: "G.B. Shea"},
		{Month: 4, Week: 3, Title: "나 같은 죄인 살리신", Composer: "Traditional American Melody"},
		{Month: 4, Week: 4, Title: "주의 친절한 팔에 안기세", Composer: "A.J. Showalter"},
	}
}

func defaultSchedules() []domain.ScheduleEntry {
	return []domain.ScheduleEntry{
		{Day: "주일 (일요일)", Time: "09:00 - 10:30", Location: "제1찬양대실", Description: "주일 1부 예배 찬양 연습"},
		{Day: "주일 (일요일)", Time: "13:00 - 15:00", Location: "본당", Description: "오후 찬양 연습 및 파트 연습"},
		{Day: "수요일", Time: "19:00 - 21:00", Location: "제1찬양대실", Description: "수요 예배 찬양 및 정기 연습"},
		{Day: "토요일", Time: "10:00 - 12:00", Location: "관현악실", Description: "관현악부 특별 연습"},
	}
}
