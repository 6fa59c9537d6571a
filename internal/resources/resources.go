// Package resources defines the catalog kinds served by the API.
package resources

import "github.com/delcom/catalog/internal/catalog"

// Plant is the medicinal plant catalog.
func Plant() catalog.Kind {
	return catalog.Kind{
		Name:   "plant",
		Plural: "plants",
		Table:  "plants",
		Noun:   "tumbuhan",
		Fields: []catalog.Field{
			{Name: "nama", Column: "nama", Message: "Nama tidak boleh kosong", MaxLength: 100, Trim: true},
			{Name: "deskripsi", Column: "deskripsi", Message: "Deskripsi tidak boleh kosong"},
			{Name: "manfaat", Column: "manfaat", Message: "Manfaat tidak boleh kosong"},
			{Name: "efekSamping", Column: "efek_samping", Message: "Efek Samping tidak boleh kosong"},
		},
		UniqueField: "nama",
		PageSize:    20,
		Messages: catalog.Messages{
			Listed:   "Berhasil mengambil daftar tumbuhan",
			NotFound: "Data tumbuhan tidak tersedia!",
			Conflict: "Tumbuhan dengan nama ini sudah terdaftar!",
		},
	}
}

// Flower is the language-of-flowers catalog.
func Flower() catalog.Kind {
	return catalog.Kind{
		Name:   "flower",
		Plural: "flowers",
		Table:  "flowers",
		Noun:   "bunga",
		Fields: []catalog.Field{
			{Name: "namaUmum", Column: "nama_umum", Message: "Nama umum tidak boleh kosong", MaxLength: 100, Trim: true},
			{Name: "namaLatin", Column: "nama_latin", Message: "Nama latin tidak boleh kosong", MaxLength: 150, Trim: true},
			{Name: "makna", Column: "makna", Message: "Makna tidak boleh kosong", MaxLength: 200, Trim: true},
			{Name: "asalBudaya", Column: "asal_budaya", Message: "Asal budaya tidak boleh kosong", MaxLength: 200, Trim: true},
			{Name: "deskripsi", Column: "deskripsi", Message: "Deskripsi tidak boleh kosong"},
		},
		UniqueField: "namaUmum",
		PageSize:    50,
		Messages: catalog.Messages{
			Listed:   "Berhasil mengambil daftar bahasa bunga",
			NotFound: "Data bunga tidak ditemukan!",
			Conflict: "Bunga dengan nama umum ini sudah terdaftar!",
		},
	}
}

// Zodiac is the zodiac sign catalog.
func Zodiac() catalog.Kind {
	return catalog.Kind{
		Name:   "zodiac",
		Plural: "zodiacs",
		Table:  "zodiacs",
		Noun:   "zodiak",
		Fields: []catalog.Field{
			{Name: "nama", Column: "nama", Message: "Nama zodiak tidak boleh kosong", MaxLength: 100, Trim: true},
			{Name: "simbol", Column: "simbol", Message: "Simbol tidak boleh kosong", MaxLength: 50, Trim: true},
			{Name: "elemen", Column: "elemen", Message: "Elemen tidak boleh kosong", MaxLength: 50, Trim: true},
			{Name: "tanggalLahir", Column: "tanggal_lahir", Message: "Periode tanggal tidak boleh kosong", MaxLength: 100, Trim: true},
			{Name: "deskripsi", Column: "deskripsi", Message: "Deskripsi tidak boleh kosong"},
			{Name: "karakteristik", Column: "karakteristik", Message: "Karakteristik tidak boleh kosong"},
			{Name: "kecocokan", Column: "kecocokan", Message: "Kecocokan tidak boleh kosong"},
		},
		UniqueField: "nama",
		PageSize:    20,
		Messages: catalog.Messages{
			Listed:   "Berhasil mengambil daftar data zodiak",
			NotFound: "Data zodiak tidak ditemukan!",
			Conflict: "Zodiak dengan nama ini sudah terdaftar!",
		},
	}
}

// All returns every kind in route order.
func All() []catalog.Kind {
	return []catalog.Kind{Plant(), Flower(), Zodiac()}
}
