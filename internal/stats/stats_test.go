package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobtrack/internal/model"
)

func TestEmptyCollection(t *testing.T) {
	status := ByStatus(nil)
	assert.True(t, status.NoData)
	assert.Equal(t, []Bar{{"Applied", 0}, {"Interview", 0}, {"Offer", 0}, {"Rejected", 0}}, status.Bars)

	platform := ByPlatform(nil)
	assert.True(t, platform.NoData)
	assert.Empty(t, platform.Bars)

	version := ByResumeVersion(nil)
	assert.True(t, version.NoData)
	assert.Empty(t, version.Bars)
}

func TestTwoRecordScenario(t *testing.T) {
	apps := []model.Application{
		{CompanyName: "Acme", Platform: model.LinkedIn, Status: model.StatusApplied},
		{CompanyName: "Beta", Platform: model.LinkedIn, Status: model.StatusOffer},
	}

	platform := ByPlatform(apps)
	assert.False(t, platform.NoData)
	assert.Equal(t, []Bar{{"LinkedIn", 2}}, platform.Bars)

	status := ByStatus(apps)
	assert.False(t, status.NoData)
	assert.Equal(t, []Bar{{"Applied", 1}, {"Interview", 0}, {"Offer", 1}, {"Rejected", 0}}, status.Bars)

	version := ByResumeVersion(apps)
	assert.Equal(t, []Bar{{"None", 2}}, version.Bars)
}

func TestPlatformUsesCustomTextAndSortsTies(t *testing.T) {
	apps := []model.Application{
		{Platform: model.OtherPlatform("Referral")},
		{Platform: model.Indeed},
		{Platform: model.OtherPlatform("Referral")},
		{Platform: model.CompanyWebsite},
	}
	assert.Equal(t, []Bar{{"Referral", 2}, {"Company Website", 1}, {"Indeed", 1}}, ByPlatform(apps).Bars)
}

func TestResumeVersionTopTen(t *testing.T) {
	var apps []model.Application
	for i := 0; i < 12; i++ {
		for n := 0; n <= i; n++ {
			apps = append(apps, model.Application{ResumeVersion: fmt.Sprintf("v%02d", i)})
		}
	}
	s := ByResumeVersion(apps)
	assert.Len(t, s.Bars, 10)
	assert.Equal(t, Bar{"v11", 12}, s.Bars[0])
	assert.Equal(t, Bar{"v02", 3}, s.Bars[9])
	assert.Equal(t, 12, s.Max())
}
