package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type CategoryRatings struct {
	Camera      int `json:"camera" binding:"required,min=1,max=5"`
	Battery     int `json:"battery" binding:"required,min=1,max=5"`
	Design      int `json:"design" binding:"required,min=1,max=5"`
	Performance int `json:"performance" binding:"required,min=1,max=5"`
	Value       int `json:"value" binding:"required,min=1,max=5"`
}

// Review lives embedded in its phone's review collection. The id is assigned
// per phone (highest existing id + 1) and is not stable across deletions.
type Review struct {
	ID               int             `json:"id"`
	UserID           string          `json:"userId"`
	UserName         string          `json:"userName"`
	Rating           float64         `json:"rating"`
	CategoryRatings  CategoryRatings `json:"categoryRatings"`
	Date             string          `json:"date"`
	Title            string          `json:"title"`
	Review           string          `json:"review"`
	Helpful          int             `json:"helpful"`
	NotHelpful       int             `json:"notHelpful"`
	HelpfulVoters    UserIDSet       `json:"helpfulVoters"`
	NotHelpfulVoters UserIDSet       `json:"notHelpfulVoters"`
}

func (r *Review) ensureVoterSets() {
	if r.HelpfulVoters == nil {
		r.HelpfulVoters = UserIDSet{}
	}
	if r.NotHelpfulVoters == nil {
		r.NotHelpfulVoters = UserIDSet{}
	}
}

// ApplyVote toggles the user's helpfulness vote. The vote type must already be
// validated as "helpful" or "notHelpful". Category ratings are never touched
// by voting.
func (r *Review) ApplyVote(userID string, voteType VoteType) {
	r.ensureVoterSets()
	if voteType == VoteHelpful {
		toggleVote(userID, &r.Helpful, r.HelpfulVoters, &r.NotHelpful, r.NotHelpfulVoters)
	} else {
		toggleVote(userID, &r.NotHelpful, r.NotHelpfulVoters, &r.Helpful, r.HelpfulVoters)
	}
}

// ReviewList is a phone's embedded review collection, stored as one jsonb
// document so the duplicate guard, id assignment and votes commit as a unit.
type ReviewList []Review

func (l ReviewList) Value() (driver.Value, error) {
	if l == nil {
		l = ReviewList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ReviewList) Scan(value interface{}) error {
	if value == nil {
		*l = ReviewList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for ReviewList", value)
	}
}

// FindByID returns the index of the review with the given id, or -1.
func (l ReviewList) FindByID(reviewID int) int {
	for i := range l {
		if l[i].ID == reviewID {
			return i
		}
	}
	return -1
}

// FindByAuthor returns the index of the review written by the given user, or -1.
// A user holds at most one review per phone.
func (l ReviewList) FindByAuthor(userID string) int {
	for i := range l {
		if l[i].UserID == userID {
			return i
		}
	}
	return -1
}

// NextID assigns review ids as max(existing)+1, or 1 for an empty collection.
// Ids can be reused once the highest-numbered review is deleted.
func (l ReviewList) NextID() int {
	maxID := 0
	for i := range l {
		if l[i].ID > maxID {
			maxID = l[i].ID
		}
	}
	return maxID + 1
}

type DisplaySpecs struct {
	ScreenSizeInches   float64 `json:"screenSizeInches"`
	Resolution         string  `json:"resolution"`
	Technology         string  `json:"technology"`
	RefreshRateHz      int     `json:"refreshRateHz"`
	PeakBrightnessNits int     `json:"peakBrightnessNits"`
	Protection         string  `json:"protection,omitempty"`
}

type PerformanceSpecs struct {
	Processor       string `json:"processor"`
	CPU             string `json:"cpu"`
	GPU             string `json:"gpu"`
	RAMOptions      []int  `json:"ramOptions"`
	StorageOptions  []int  `json:"storageOptions"`
	OperatingSystem string `json:"operatingSystem"`
}

type CameraSpecs struct {
	MainMegapixels      float64  `json:"mainMegapixels"`
	UltrawideMegapixels float64  `json:"ultrawideMegapixels,omitempty"`
	TelephotoMegapixels float64  `json:"telephotoMegapixels,omitempty"`
	FrontMegapixels     float64  `json:"frontMegapixels"`
	Features            []string `json:"features,omitempty"`
}

type DesignSpecs struct {
	DimensionsMm    string   `json:"dimensionsMm"`
	WeightGrams     float64  `json:"weightGrams"`
	BuildMaterials  string   `json:"buildMaterials,omitempty"`
	ColorsAvailable []string `json:"colorsAvailable"`
}

type BatterySpecs struct {
	CapacityMAh      int    `json:"capacitymAh"`
	ChargingSpeedW   int    `json:"chargingSpeedW"`
	BatteryType      string `json:"batteryType"`
	WirelessCharging bool   `json:"wirelessCharging"`
}

type ConnectivitySpecs struct {
	Has5G            bool   `json:"has5G"`
	BluetoothVersion string `json:"bluetoothVersion"`
	HasNFC           bool   `json:"hasNfc"`
	HeadphoneJack    bool   `json:"headphoneJack"`
}

type BenchmarkSpecs struct {
	GeekbenchSingleCore int `json:"geekbenchSingleCore"`
	GeekbenchMultiCore  int `json:"geekbenchMultiCore"`
	AntutuScore         int `json:"antutuScore"`
}

type PhoneSpecs struct {
	Display      DisplaySpecs      `json:"display"`
	Performance  PerformanceSpecs  `json:"performance"`
	Benchmarks   BenchmarkSpecs    `json:"benchmarks"`
	Camera       CameraSpecs       `json:"camera"`
	Design       DesignSpecs       `json:"design"`
	Battery      BatterySpecs      `json:"battery"`
	Connectivity ConnectivitySpecs `json:"connectivity"`
}

func (s PhoneSpecs) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *PhoneSpecs) Scan(value interface{}) error {
	if value == nil {
		*s = PhoneSpecs{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type %T for PhoneSpecs", value)
	}
}

type CarrierCompatibility struct {
	Name       string `json:"name"`
	Compatible bool   `json:"compatible"`
	Notes      string `json:"notes,omitempty"`
}

type CarrierList []CarrierCompatibility

func (l CarrierList) Value() (driver.Value, error) {
	if l == nil {
		l = CarrierList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CarrierList) Scan(value interface{}) error {
	if value == nil {
		*l = CarrierList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for CarrierList", value)
	}
}

// Phone is keyed by a URL-friendly slug (e.g. "galaxy-s24-ultra").
type Phone struct {
	ID          string      `json:"id" gorm:"primaryKey;size:128"`
	Name        string      `json:"name" gorm:"not null"`
	Brand       string      `json:"brand" gorm:"not null;index"`
	ReleaseDate time.Time   `json:"releaseDate"`
	Price       float64     `json:"price" gorm:"not null"`
	ImageMain   string      `json:"imageMain"`
	Specs       PhoneSpecs  `json:"specs" gorm:"type:jsonb"`
	Carriers    CarrierList `json:"carrierCompatibility" gorm:"type:jsonb"`
	Reviews     ReviewList  `json:"reviews" gorm:"type:jsonb"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
