package model

// Provinces lists the 77 provinces of Thailand accepted for base tax rates and
// user profiles.
var Provinces = []string{
	"Amnat Charoen",
	"Ang Thong",
	"Bangkok",
	"Bueng Kan",
	"Buriram",
	"Chachoengsao",
	"Chai Nat",
	"Chaiyaphum",
	"Chanthaburi",
	"Chiang Mai",
	"Chiang Rai",
	"Chonburi",
	"Chumphon",
	"Kalasin",
	"Kamphaeng Phet",
	"Kanchanaburi",
	"Khon Kaen",
	"Krabi",
	"Lampang",
	"Lamphun",
	"Loei",
	"Lopburi",
	"Mae Hong Son",
	"Maha Sarakham",
	"Mukdahan",
	"Nakhon Nayok",
	"Nakhon Pathom",
	"Nakhon Phanom",
	"Nakhon Ratchasima",
	"Nakhon Sawan",
	"Nakhon Si Thammarat",
	"Nan",
	"Narathiwat",
	"Nong Bua Lamphu",
	"Nong Khai",
	"Nonthaburi",
	"Pathum Thani",
	"Pattani",
	"Phang Nga",
	"Phatthalung",
	"Phayao",
	"Phetchabun",
	"Phetchaburi",
	"Phichit",
	"Phitsanulok",
	"Phra Nakhon Si Ayutthaya",
	"Phrae",
	"Phuket",
	"Prachinburi",
	"Prachuap Khiri Khan",
	"Ranong",
	"Ratchaburi",
	"Rayong",
	"Roi Et",
	"Sa Kaeo",
	"Sakon Nakhon",
	"Samut Prakan",
	"Samut Sakhon",
	"Samut Songkhram",
	"Saraburi",
	"Satun",
	"Sing Buri",
	"Sisaket",
	"Songkhla",
	"Sukhothai",
	"Suphan Buri",
	"Surat Thani",
	"Surin",
	"Tak",
	"Trang",
	"Trat",
	"Ubon Ratchathani",
	"Udon Thani",
	"Uthai Thani",
	"Uttaradit",
	"Yala",
	"Yasothon",
}

var provinceSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Provinces))
	for _, p := range Provinces {
		set[p] = struct{}{}
	}
	return set
}()

// IsProvince reports whether name is one of Provinces (exact match).
func IsProvince(name string) bool {
	_, ok := provinceSet[name]
	return ok
}
